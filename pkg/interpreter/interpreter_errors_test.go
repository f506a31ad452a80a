package interpreter

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"dscript/interpreter-go/pkg/ast"
)

func TestRangeBoundMustBeInteger(t *testing.T) {
	out, err := runSource(t, New(), `for i in true..5 loop print i end`, "")
	if !IsKind(err, RangeBoundNotInteger) {
		t.Fatalf("expected RangeBoundNotInteger, got %v", err)
	}
	if out != "" {
		t.Fatalf("no iteration may run, got output %q", out)
	}
	expectErrorKind(t, `for i in 1..2.5 loop end`, RangeBoundNotInteger)
}

func TestBreakInsideFunctionEscapes(t *testing.T) {
	rtErr := expectErrorKind(t, `
var f := func () is break end
for i in 1..3 loop f() end
`, ControlFlowEscape)
	if rtErr.Span.Start.Line != 2 {
		t.Fatalf("expected error at the break statement, got %v", rtErr.Span)
	}
	expectErrorKind(t, `var g := func () is continue end; while true loop g() end`, ControlFlowEscape)
}

func TestBreakAtTopLevelEscapes(t *testing.T) {
	expectErrorKind(t, `print 1; break`, ControlFlowEscape)
}

func TestUndefinedVariableLocation(t *testing.T) {
	rtErr := expectErrorKind(t, `print nope`, UndefinedVariable)
	if rtErr.Span.Start != (ast.Position{Line: 1, Column: 7}) {
		t.Fatalf("unexpected span %v", rtErr.Span)
	}
	if rtErr.Error() != "1:7: UndefinedVariable: undefined variable 'nope'" {
		t.Fatalf("unexpected message %q", rtErr.Error())
	}
}

func TestBlockScopeEndsWithBlock(t *testing.T) {
	expectErrorKind(t, `if true then var inner := 1 end; print inner`, UndefinedVariable)
}

func TestArityMismatch(t *testing.T) {
	expectErrorKind(t, `var f := func (a) => a; print f(1, 2)`, ArityMismatch)
}

func TestConditionMustBeBoolean(t *testing.T) {
	expectErrorKind(t, `if 1 then print 1 end`, NotBoolean)
	expectErrorKind(t, `while "yes" loop end`, NotBoolean)
}

func TestOperatorTypeMismatch(t *testing.T) {
	cases := []string{
		`print 1 + "a"`,
		`print 1 = "a"`,
		`print "a" < "b"`,
		`print 1 and true`,
		`print -"a"`,
		`print not 1`,
		`print [1] = [1]`,
		`var x := 1; print x[1]`,
		`var x := 1; print x.1`,
		`var x := 1; x()`,
		`var a := [1]; print a["k"]`,
		`var s := "a"; s -= "b"`,
	}
	for _, src := range cases {
		expectErrorKind(t, src, TypeMismatch)
	}
}

func TestTupleAccessErrors(t *testing.T) {
	expectErrorKind(t, `var t := {a := 1}; print t.2`, IndexOutOfRange)
	expectErrorKind(t, `var t := {a := 1}; print t.b`, KeyNotFound)
}

func TestIntegerDivisionByZero(t *testing.T) {
	expectErrorKind(t, `print 1 / 0`, DivisionByZero)
}

func TestStackOverflow(t *testing.T) {
	_, err := runSource(t, New(WithMaxCallDepth(50)), `var f := func (n) => f(n + 1); print f(0)`, "")
	if !IsKind(err, StackOverflow) {
		t.Fatalf("expected StackOverflow, got %v", err)
	}
}

func TestHugeCallDepthIsClampedToLimit(t *testing.T) {
	_, err := runSource(t, New(WithMaxCallDepth(100000000)), `var f := func (n) is return f(n + 1) end; print f(0)`, "")
	if !IsKind(err, StackOverflow) {
		t.Fatalf("expected StackOverflow, got %v", err)
	}
	if want := fmt.Sprintf("call depth exceeded %d", MaxCallDepthLimit); !strings.Contains(err.Error(), want) {
		t.Fatalf("expected %q in %v", want, err)
	}
}

func TestRuntimeErrorRecordsCallSites(t *testing.T) {
	rtErr := expectErrorKind(t, `
var inner := func () => nope
var outer := func () => inner()
outer()
`, UndefinedVariable)
	if len(rtErr.Calls) != 2 {
		t.Fatalf("expected two call sites, got %v", rtErr.Calls)
	}
	if rtErr.Calls[0].Start.Line != 3 || rtErr.Calls[1].Start.Line != 4 {
		t.Fatalf("unexpected call sites %v", rtErr.Calls)
	}
}

func TestInputErrors(t *testing.T) {
	_, err := runSource(t, New(), `var n := readInt`, "")
	if !IsKind(err, InputError) {
		t.Fatalf("expected InputError at end of input, got %v", err)
	}
	_, err = runSource(t, New(), `var n := readInt`, "abc")
	if !IsKind(err, InputError) {
		t.Fatalf("expected InputError for malformed integer, got %v", err)
	}
}

func TestErrorsAsRuntimeError(t *testing.T) {
	_, err := runSource(t, New(), `print 1 + true`, "")
	var rtErr *RuntimeError
	if !errors.As(err, &rtErr) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if rtErr.Span.IsZero() {
		t.Fatalf("expected a source location")
	}
}
