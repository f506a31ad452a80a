package interpreter

import (
	"strings"
	"testing"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/parser"
	"dscript/interpreter-go/pkg/runtime"
)

func mustParse(t testing.TB, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource("test.ds", source)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return program
}

// runSource executes source with the given stdin and returns what it printed.
func runSource(t testing.TB, interp *Interpreter, source string, stdin string) (string, error) {
	t.Helper()
	var out strings.Builder
	err := interp.Execute(mustParse(t, source), strings.NewReader(stdin), &out)
	return out.String(), err
}

func expectOutput(t *testing.T, source string, want string) {
	t.Helper()
	got, err := runSource(t, New(), source, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("output mismatch\nwant: %q\ngot:  %q", want, got)
	}
}

func expectErrorKind(t *testing.T, source string, kind ErrorKind) *RuntimeError {
	t.Helper()
	_, err := runSource(t, New(), source, "")
	if err == nil {
		t.Fatalf("expected %s error, got none", kind)
	}
	rtErr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	if rtErr.Kind != kind {
		t.Fatalf("expected %s, got %s (%v)", kind, rtErr.Kind, err)
	}
	return rtErr
}

func lookupGlobal(t *testing.T, interp *Interpreter, name string) runtime.Value {
	t.Helper()
	cell, err := interp.Scopes().Lookup(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	return cell.Get()
}
