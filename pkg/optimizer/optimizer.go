// Package optimizer rewrites dscript syntax trees in place without changing
// what they print or which errors they raise.
package optimizer

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/interpreter"
)

const (
	PassConstantFolding = "constant-folding"
	PassDeadBranches    = "dead-branches"
	PassUnreachable     = "unreachable"
)

// DefaultMaxIterations bounds the fixed-point loop.
const DefaultMaxIterations = 16

// Pass rewrites a program and reports whether anything changed.
type Pass func(*ast.Program) bool

// PassNames lists the known passes in the order they run.
func PassNames() []string {
	return []string{PassConstantFolding, PassDeadBranches, PassUnreachable}
}

// ValidatePasses returns an error naming the first unknown pass.
func ValidatePasses(names []string) error {
	for _, name := range names {
		if !knownPass(name) {
			return fmt.Errorf("unknown optimizer pass %q (known: %s)", name, strings.Join(PassNames(), ", "))
		}
	}
	return nil
}

func knownPass(name string) bool {
	for _, known := range PassNames() {
		if known == name {
			return true
		}
	}
	return false
}

type Optimizer struct {
	enabled       map[string]bool
	associativity interpreter.Associativity
	maxIterations int
	logger        zerolog.Logger
}

type Option func(*Optimizer)

// WithPasses restricts the optimizer to the named passes. Unknown names are
// ignored; use ValidatePasses to reject them up front.
func WithPasses(names ...string) Option {
	return func(o *Optimizer) {
		o.enabled = make(map[string]bool, len(names))
		for _, name := range names {
			o.enabled[name] = true
		}
	}
}

// WithAssociativity must match the interpreter that will run the program.
func WithAssociativity(a interpreter.Associativity) Option {
	return func(o *Optimizer) { o.associativity = a }
}

func WithMaxIterations(n int) Option {
	return func(o *Optimizer) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *Optimizer) { o.logger = logger }
}

func New(opts ...Option) *Optimizer {
	o := &Optimizer{
		maxIterations: DefaultMaxIterations,
		logger:        zerolog.Nop(),
	}
	WithPasses(PassNames()...)(o)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type namedPass struct {
	name string
	run  Pass
}

func (o *Optimizer) passes() []namedPass {
	all := []namedPass{
		{PassConstantFolding, o.foldConstants},
		{PassDeadBranches, o.eliminateDeadBranches},
		{PassUnreachable, o.pruneUnreachable},
	}
	out := all[:0]
	for _, p := range all {
		if o.enabled[p.name] {
			out = append(out, p)
		}
	}
	return out
}

// Optimize runs the enabled passes until none of them changes the program
// or the iteration bound is reached. It returns the number of rounds that
// changed something.
func (o *Optimizer) Optimize(program *ast.Program) int {
	if program == nil {
		return 0
	}
	passes := o.passes()
	rounds := 0
	for iter := 0; iter < o.maxIterations; iter++ {
		changed := false
		for _, p := range passes {
			if p.run(program) {
				o.logger.Debug().Str("pass", p.name).Int("round", iter+1).Msg("pass rewrote program")
				changed = true
			}
		}
		if !changed {
			break
		}
		rounds++
	}
	return rounds
}

// Optimize runs every pass with default settings.
func Optimize(program *ast.Program) int {
	return New().Optimize(program)
}
