package checker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/checker"
	"dscript/interpreter-go/pkg/parser"
)

func check(t *testing.T, src string, opts ...checker.Option) []checker.Diagnostic {
	t.Helper()
	program, err := parser.ParseSource("test.ds", src)
	require.NoError(t, err)
	return checker.Check(program, opts...)
}

func codes(diags []checker.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}
	return out
}

func TestCleanProgram(t *testing.T) {
	diags := check(t, `
var fact := func (n) is
  if n <= 1 then return 1 end
  return n * fact(n - 1)
end
var total := 0
for i in 1..5 loop
  if i = 2 then continue end
  total += fact(i)
end
while false loop break end
print total, {a := 1, b := 2}
`)
	assert.Empty(t, diags)
	assert.False(t, checker.HasErrors(diags))
}

func TestLoopKeywordsOutsideLoops(t *testing.T) {
	diags := check(t, "print 1\nbreak\ncontinue")
	require.Equal(t, []string{checker.CodeBreakOutsideLoop, checker.CodeContinueOutsideLoop}, codes(diags))
	assert.Equal(t, 2, diags[0].Span.Start.Line)
	assert.Equal(t, 3, diags[1].Span.Start.Line)
	assert.True(t, checker.HasErrors(diags))
}

func TestLoopDoesNotExtendIntoFunctions(t *testing.T) {
	diags := check(t, `
for i in 1..3 loop
  var f := func () is break end
  var g := func () is
    while true loop continue end
  end
end
`)
	assert.Equal(t, []string{checker.CodeBreakOutsideLoop}, codes(diags))
}

func TestTopLevelReturnIsAWarning(t *testing.T) {
	diags := check(t, `print 1; return`)
	require.Equal(t, []string{checker.CodeTopLevelReturn}, codes(diags))
	assert.Equal(t, checker.SeverityWarning, diags[0].Severity)
	assert.False(t, checker.HasErrors(diags))

	assert.Empty(t, check(t, `var f := func () is return 1 end`))
}

func TestUndefinedNames(t *testing.T) {
	diags := check(t, `print x; var x := 1; print x`)
	require.Equal(t, []string{checker.CodeUndefined}, codes(diags))
	assert.Equal(t, ast.Position{Line: 1, Column: 7}, diags[0].Span.Start)
	assert.Equal(t, "undefined variable 'x'", diags[0].Message)

	assert.Equal(t, []string{checker.CodeUndefined}, codes(check(t, `var x := x`)))
	assert.Equal(t, []string{checker.CodeUndefined}, codes(check(t, `if true then var y := 1 end; print y`)))
	assert.Equal(t, []string{checker.CodeUndefined}, codes(check(t, `for i in 1..2 loop end; print i`)))
	assert.Equal(t, []string{checker.CodeUndefined}, codes(check(t, `var f := func (a) => a; print a`)))
}

func TestUndefinedInsideTailsAndLiterals(t *testing.T) {
	diags := check(t, `var a := [1]; print a[k], [m], {n := q}, a(z)`)
	assert.Equal(t, []string{checker.CodeUndefined, checker.CodeUndefined, checker.CodeUndefined, checker.CodeUndefined}, codes(diags))
}

func TestFunctionsSeeLaterTopLevelDeclarations(t *testing.T) {
	assert.Empty(t, check(t, `
var isEven := func (n) is
  if n = 0 then return true end
  return isOdd(n - 1)
end
var isOdd := func (n) is
  if n = 0 then return false end
  return isEven(n - 1)
end
print isEven(4)
`))
}

func TestSelfReferenceOnlyForDirectFunctionLiterals(t *testing.T) {
	assert.Empty(t, check(t, `
var outer := func () is
  var walk := func (n) is
    if n > 0 then walk(n - 1) end
  end
  walk(3)
end
`))
	diags := check(t, `
var outer := func () is
  var g := (func () => g)
end
`)
	assert.Equal(t, []string{checker.CodeUndefined}, codes(diags))
}

func TestRedeclaration(t *testing.T) {
	diags := check(t, "var a := 1\nvar a := 2")
	require.Equal(t, []string{checker.CodeRedeclared}, codes(diags))
	assert.Equal(t, 2, diags[0].Span.Start.Line)

	assert.Empty(t, check(t, `var a := 1; if true then var a := 2 end`))
	assert.Equal(t, []string{checker.CodeRedeclared}, codes(check(t, `var f := func (a) is var a := 1 end`)))
	assert.Empty(t, check(t, `var f := func (f) => f`))
}

func TestDuplicateParametersAndKeys(t *testing.T) {
	assert.Equal(t, []string{checker.CodeDuplicateParam}, codes(check(t, `var f := func (a, b, a) => a`)))
	assert.Equal(t, []string{checker.CodeDuplicateKey}, codes(check(t, `print {a := 1, 2, a := 3}`)))
	assert.Empty(t, check(t, `print {1, 2, x := 3}`))
}

func TestWithGlobals(t *testing.T) {
	assert.Equal(t, []string{checker.CodeUndefined}, codes(check(t, `print counter`)))
	assert.Empty(t, check(t, `print counter; var counter := 2`, checker.WithGlobals("counter")))
}

func TestDiagnosticError(t *testing.T) {
	diags := check(t, `break`)
	require.Len(t, diags, 1)
	assert.Equal(t, "1:1: E_BREAK_OUTSIDE_LOOP: break outside of a loop", diags[0].Error())
	assert.Equal(t, "error", diags[0].Severity.String())
}

func TestNilProgram(t *testing.T) {
	assert.Nil(t, checker.Check(nil))
}
