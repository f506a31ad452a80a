package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function calls.
const DefaultMaxCallDepth = 4096

// MaxCallDepthLimit is the deepest nesting the evaluator can reach while
// staying well inside the Go runtime's goroutine stack limit. One call
// costs a few kilobytes of Go stack across the statement and expression
// evaluators.
const MaxCallDepthLimit = 32768

// Associativity selects how runs of equal-precedence operators reduce.
type Associativity int

const (
	// RightAssociative reduces equal-precedence runs right to left, so
	// 10 - 3 - 2 is 9.
	RightAssociative Associativity = iota
	// LeftAssociative is conventional left-to-right reduction.
	LeftAssociative
)

func (a Associativity) String() string {
	if a == LeftAssociative {
		return "left"
	}
	return "right"
}

// ParseAssociativity accepts "right" or "left" (case-insensitive).
func ParseAssociativity(s string) (Associativity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right":
		return RightAssociative, nil
	case "left":
		return LeftAssociative, nil
	}
	return RightAssociative, fmt.Errorf("unknown associativity %q", s)
}

// Interpreter walks dscript syntax trees. Bindings made at the top level
// persist across Execute calls.
type Interpreter struct {
	scopes        *runtime.ScopeStack
	input         *inputReader
	out           *bufio.Writer
	logger        zerolog.Logger
	associativity Associativity
	maxCallDepth  int
	callDepth     int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

func WithLogger(logger zerolog.Logger) Option {
	return func(i *Interpreter) { i.logger = logger }
}

func WithAssociativity(a Associativity) Option {
	return func(i *Interpreter) { i.associativity = a }
}

// WithMaxCallDepth sets the call nesting limit; values < 1 keep the default
// and values above MaxCallDepthLimit are clamped to it.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		switch {
		case depth > MaxCallDepthLimit:
			i.maxCallDepth = MaxCallDepthLimit
		case depth > 0:
			i.maxCallDepth = depth
		}
	}
}

// New returns an interpreter with an empty global scope.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes:       runtime.NewScopeStack(),
		logger:       zerolog.Nop(),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Scopes exposes the scope stack.
func (i *Interpreter) Scopes() *runtime.ScopeStack {
	return i.scopes
}

// Execute runs a program, reading input primaries from in and writing Print
// output to out. A top-level return ends the program normally. On error the
// global bindings made so far are kept and inner frames are discarded.
func Execute(program *ast.Program, in io.Reader, out io.Writer) error {
	return New().Execute(program, in, out)
}

func (i *Interpreter) Execute(program *ast.Program, in io.Reader, out io.Writer) (err error) {
	if program == nil || program.Body == nil {
		return nil
	}
	if in == nil {
		in = strings.NewReader("")
	}
	if i.input == nil || !sameReader(i.input.src, in) {
		i.input = newInputReader(in)
	}
	i.out = bufio.NewWriter(out)
	defer func() {
		if flushErr := i.out.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("interpreter: write output: %w", flushErr)
		}
		i.input.out = nil
	}()
	i.input.out = i.out

	i.logger.Debug().Int("statements", len(program.Body.Statements)).Msg("execute")
	err = i.execStatements(program.Body.Statements)
	switch err.(type) {
	case nil:
		return nil
	case returnSignal:
		return nil
	}
	i.scopes.Reset()
	i.callDepth = 0
	err = escapeError(err)
	i.logger.Debug().Err(err).Msg("execution failed")
	return err
}

// EvaluateExpression evaluates a single expression in the current scope.
func (i *Interpreter) EvaluateExpression(expr *ast.Expression) (runtime.Value, error) {
	cell, err := i.evaluateExpression(expr)
	if err != nil {
		return nil, escapeError(err)
	}
	return cell.Get(), nil
}
