package checker

import (
	"fmt"

	"dscript/interpreter-go/pkg/ast"
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

const (
	CodeBreakOutsideLoop    = "E_BREAK_OUTSIDE_LOOP"
	CodeContinueOutsideLoop = "E_CONTINUE_OUTSIDE_LOOP"
	CodeTopLevelReturn      = "W_TOP_LEVEL_RETURN"
	CodeUndefined           = "E_UNDEFINED"
	CodeRedeclared          = "E_REDECLARED"
	CodeDuplicateParam      = "E_DUP_PARAM"
	CodeDuplicateKey        = "E_DUP_KEY"
)

// Diagnostic represents a semantic error or warning.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
	Span     ast.Span
}

func (d Diagnostic) Error() string {
	if d.Span.IsZero() {
		return fmt.Sprintf("%s: %s", d.Code, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic blocks execution.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Checker walks a program with the same frame layout the interpreter
// builds at run time.
type Checker struct {
	scope     *scope
	globals   map[string]bool
	hoisted   map[string]bool
	loopDepth int
	funcDepth int
	diags     []Diagnostic
}

type Option func(*Checker)

// WithGlobals marks names as already bound in the global frame, as they are
// for a REPL entry evaluated after earlier ones. Redeclaring them is allowed.
func WithGlobals(names ...string) Option {
	return func(c *Checker) {
		for _, name := range names {
			c.globals[name] = true
		}
	}
}

func New(opts ...Option) *Checker {
	c := &Checker{globals: make(map[string]bool)}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs every check over program with default options.
func Check(program *ast.Program, opts ...Option) []Diagnostic {
	return New(opts...).Check(program)
}

// Check returns the diagnostics for program in source order.
func (c *Checker) Check(program *ast.Program) []Diagnostic {
	c.diags = nil
	c.loopDepth = 0
	c.funcDepth = 0
	c.scope = nil
	if program == nil || program.Body == nil {
		return nil
	}
	c.hoisted = make(map[string]bool, len(c.globals))
	for name := range c.globals {
		c.hoisted[name] = true
	}
	for _, stmt := range program.Body.Statements {
		if decl, ok := stmt.(*ast.Declaration); ok && decl != nil {
			c.hoisted[decl.Name] = true
		}
	}
	c.push()
	for _, stmt := range program.Body.Statements {
		c.checkStatement(stmt)
	}
	c.pop()
	return c.diags
}

func (c *Checker) report(sev Severity, code string, node ast.Node, format string, args ...any) {
	var span ast.Span
	if node != nil {
		span = node.Span()
	}
	c.diags = append(c.diags, Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Span:     span,
	})
}
