package driver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/checker"
	"dscript/interpreter-go/pkg/interpreter"
	"dscript/interpreter-go/pkg/lexer"
)

func span(line, col int) ast.Span {
	return ast.Span{Start: ast.Position{Line: line, Column: col}, End: ast.Position{Line: line, Column: col + 1}}
}

func TestDescribeRuntimeDiagnosticWithCallSites(t *testing.T) {
	err := &interpreter.RuntimeError{
		Kind:    interpreter.UndefinedVariable,
		Message: "undefined variable 'nope'",
		Span:    span(2, 25),
		Calls:   []ast.Span{span(3, 25), span(2, 25), span(4, 1)},
	}
	diag := DiagnosticFromError("main.ds", fmt.Errorf("run: %w", err))
	require.Len(t, diag.Notes, 2, "the call site equal to the error location is skipped")
	assert.Equal(t,
		"error: main.ds:2:25: UndefinedVariable: undefined variable 'nope'\n"+
			"note: main.ds:3:25 called from here\n"+
			"note: main.ds:4:1 called from here",
		DescribeDiagnostic(diag))
}

func TestCallSiteNotesAreBounded(t *testing.T) {
	err := &interpreter.RuntimeError{Kind: interpreter.StackOverflow, Message: "too deep", Span: span(1, 1)}
	for line := 2; line < 30; line++ {
		err.Calls = append(err.Calls, span(line, 1))
	}
	assert.Len(t, DiagnosticFromError("", err).Notes, maxCallNotes)
}

func TestDiagnosticFromLexerAndUnknownErrors(t *testing.T) {
	diag := DiagnosticFromError("x.ds", &lexer.Error{Span: span(1, 3), Message: "unexpected character '$'"})
	assert.Equal(t, "error: x.ds:1:3: E_SYNTAX: unexpected character '$'", DescribeDiagnostic(diag))

	diag = DiagnosticFromError("", errors.New("boom"))
	assert.Equal(t, "error: boom", DescribeDiagnostic(diag))
}

func TestDiagnosticsFromChecker(t *testing.T) {
	diags := DiagnosticsFromChecker("m.ds", []checker.Diagnostic{
		{Severity: checker.SeverityWarning, Code: checker.CodeTopLevelReturn, Message: "return outside a function ends the program", Span: span(5, 1)},
		{Severity: checker.SeverityError, Code: checker.CodeUndefined, Message: "undefined variable 'q'"},
	})
	require.Len(t, diags, 2)
	assert.Equal(t, "warning: m.ds:5:1: W_TOP_LEVEL_RETURN: return outside a function ends the program", DescribeDiagnostic(diags[0]))
	assert.Equal(t, "error: m.ds: E_UNDEFINED: undefined variable 'q'", DescribeDiagnostic(diags[1]))
	assert.True(t, HasErrors(diags))
	assert.False(t, HasErrors(diags[:1]))
}

func TestFormatLocation(t *testing.T) {
	cases := map[DiagnosticLocation]string{
		{}:                                 "",
		{Path: "a.ds"}:                     "a.ds",
		{Path: "a.ds", Line: 3}:            "a.ds:3",
		{Line: 3, Column: 4}:               "line 3, column 4",
		{Line: 3}:                          "line 3",
		{Path: "a.ds", Line: 1, Column: 2}: "a.ds:1:2",
	}
	for loc, want := range cases {
		assert.Equal(t, want, FormatLocation(loc), "%+v", loc)
	}
}
