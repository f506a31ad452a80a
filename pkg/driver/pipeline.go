package driver

import (
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/checker"
	"dscript/interpreter-go/pkg/interpreter"
	"dscript/interpreter-go/pkg/optimizer"
	"dscript/interpreter-go/pkg/parser"
)

// ErrCheckFailed is returned by Compile when semantic checks report errors.
var ErrCheckFailed = errors.New("semantic checks failed")

// Pipeline runs source text through parsing, semantic checks, optimization
// and execution according to a Config. One pipeline keeps one interpreter,
// so global bindings survive between Run calls.
type Pipeline struct {
	config Config
	logger zerolog.Logger
	interp *interpreter.Interpreter
}

type PipelineOption func(*Pipeline)

func WithLogger(logger zerolog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = logger }
}

func NewPipeline(cfg Config, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{config: cfg, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) Config() Config {
	return p.config
}

func (p *Pipeline) associativity() interpreter.Associativity {
	assoc, err := interpreter.ParseAssociativity(p.config.Associativity)
	if err != nil {
		return interpreter.RightAssociative
	}
	return assoc
}

// Interpreter returns the pipeline's interpreter, creating it on first use.
func (p *Pipeline) Interpreter() *interpreter.Interpreter {
	if p.interp == nil {
		p.interp = interpreter.New(
			interpreter.WithAssociativity(p.associativity()),
			interpreter.WithMaxCallDepth(p.config.MaxCallDepth),
			interpreter.WithLogger(p.logger.With().Str("component", "interpreter").Logger()),
		)
	}
	return p.interp
}

func (p *Pipeline) phase(name, path string, start time.Time) *zerolog.Event {
	return p.logger.Debug().Str("phase", name).Str("path", path).Dur("elapsed", time.Since(start))
}

// Parse lexes and parses source without further processing.
func (p *Pipeline) Parse(path, source string) (*ast.Program, []Diagnostic, error) {
	start := time.Now()
	program, err := parser.ParseSource(path, source)
	if err != nil {
		p.phase("parse", path, start).Err(err).Msg("phase failed")
		return nil, []Diagnostic{DiagnosticFromError(path, err)}, err
	}
	p.phase("parse", path, start).Int("statements", len(program.Body.Statements)).Msg("phase done")
	return program, nil, nil
}

// Check runs the semantic checks. Names already bound by earlier runs of
// this pipeline count as declared.
func (p *Pipeline) Check(path string, program *ast.Program) []Diagnostic {
	start := time.Now()
	var globals []string
	if p.interp != nil {
		globals = p.interp.Scopes().GlobalNames()
	}
	diags := DiagnosticsFromChecker(path, checker.Check(program, checker.WithGlobals(globals...)))
	p.phase("check", path, start).Int("diagnostics", len(diags)).Msg("phase done")
	return diags
}

// Optimize rewrites program with the configured passes.
func (p *Pipeline) Optimize(path string, program *ast.Program) {
	start := time.Now()
	rounds := optimizer.New(
		optimizer.WithPasses(p.config.Passes...),
		optimizer.WithAssociativity(p.associativity()),
		optimizer.WithLogger(p.logger.With().Str("component", "optimizer").Logger()),
	).Optimize(program)
	p.phase("optimize", path, start).Int("rounds", rounds).Msg("phase done")
}

// Compile parses, checks and optimizes source. Warnings are returned with a
// nil error; checker errors yield ErrCheckFailed.
func (p *Pipeline) Compile(path, source string) (*ast.Program, []Diagnostic, error) {
	program, diags, err := p.Parse(path, source)
	if err != nil {
		return nil, diags, err
	}
	if p.config.Check {
		diags = append(diags, p.Check(path, program)...)
		if HasErrors(diags) {
			return program, diags, ErrCheckFailed
		}
	}
	if p.config.Optimize {
		p.Optimize(path, program)
	}
	return program, diags, nil
}

// Execute runs an already built program.
func (p *Pipeline) Execute(path string, program *ast.Program, in io.Reader, out io.Writer) ([]Diagnostic, error) {
	start := time.Now()
	err := p.Interpreter().Execute(program, in, out)
	if err != nil {
		p.phase("execute", path, start).Err(err).Msg("phase failed")
		return []Diagnostic{DiagnosticFromError(path, err)}, err
	}
	p.phase("execute", path, start).Msg("phase done")
	return nil, nil
}

// Run compiles and executes source.
func (p *Pipeline) Run(path, source string, in io.Reader, out io.Writer) ([]Diagnostic, error) {
	program, diags, err := p.Compile(path, source)
	if err != nil {
		return diags, err
	}
	runDiags, err := p.Execute(path, program, in, out)
	return append(diags, runDiags...), err
}
