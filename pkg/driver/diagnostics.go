package driver

import (
	"errors"
	"fmt"
	"strings"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/checker"
	"dscript/interpreter-go/pkg/interpreter"
	"dscript/interpreter-go/pkg/lexer"
	"dscript/interpreter-go/pkg/parser"
)

type DiagnosticSeverity string

const (
	SeverityError   DiagnosticSeverity = "error"
	SeverityWarning DiagnosticSeverity = "warning"
)

// CodeSyntax marks lexer and parser failures.
const CodeSyntax = "E_SYNTAX"

// maxCallNotes bounds the "called from here" notes attached to one report.
const maxCallNotes = 8

type DiagnosticLocation struct {
	Path   string
	Line   int
	Column int
}

type DiagnosticNote struct {
	Message  string
	Location DiagnosticLocation
}

// Diagnostic is the toolchain-wide report for syntax, semantic and runtime
// problems.
type Diagnostic struct {
	Severity DiagnosticSeverity
	Code     string
	Message  string
	Location DiagnosticLocation
	Notes    []DiagnosticNote
}

func locationOf(path string, span ast.Span) DiagnosticLocation {
	if span.IsZero() {
		return DiagnosticLocation{Path: path}
	}
	return DiagnosticLocation{Path: path, Line: span.Start.Line, Column: span.Start.Column}
}

// DiagnosticFromError converts an error from any phase into a diagnostic.
// Runtime errors carry one note per recorded call site.
func DiagnosticFromError(path string, err error) Diagnostic {
	var (
		perr  *parser.Error
		lerr  *lexer.Error
		rtErr *interpreter.RuntimeError
	)
	switch {
	case errors.As(err, &perr):
		if perr.Path != "" {
			path = perr.Path
		}
		return Diagnostic{
			Severity: SeverityError,
			Code:     CodeSyntax,
			Message:  perr.Message,
			Location: locationOf(path, perr.Span),
		}
	case errors.As(err, &lerr):
		return Diagnostic{
			Severity: SeverityError,
			Code:     CodeSyntax,
			Message:  lerr.Message,
			Location: locationOf(path, lerr.Span),
		}
	case errors.As(err, &rtErr):
		diag := Diagnostic{
			Severity: SeverityError,
			Code:     string(rtErr.Kind),
			Message:  rtErr.Message,
			Location: locationOf(path, rtErr.Span),
		}
		for _, call := range rtErr.Calls {
			if len(diag.Notes) >= maxCallNotes {
				break
			}
			loc := locationOf(path, call)
			if loc.Line == 0 || loc == diag.Location {
				continue
			}
			diag.Notes = append(diag.Notes, DiagnosticNote{Message: "called from here", Location: loc})
		}
		return diag
	}
	message := ""
	if err != nil {
		message = err.Error()
	}
	return Diagnostic{Severity: SeverityError, Message: message, Location: DiagnosticLocation{Path: path}}
}

// DiagnosticsFromChecker converts semantic diagnostics.
func DiagnosticsFromChecker(path string, diags []checker.Diagnostic) []Diagnostic {
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		sev := SeverityError
		if d.Severity == checker.SeverityWarning {
			sev = SeverityWarning
		}
		out = append(out, Diagnostic{
			Severity: sev,
			Code:     d.Code,
			Message:  d.Message,
			Location: locationOf(path, d.Span),
		})
	}
	return out
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// DescribeDiagnostic renders a diagnostic as
//
//	error: main.ds:3:7: E_UNDEFINED: undefined variable 'x'
//	note: main.ds:9:1 called from here
func DescribeDiagnostic(diag Diagnostic) string {
	var b strings.Builder
	severity := diag.Severity
	if severity == "" {
		severity = SeverityError
	}
	b.WriteString(string(severity))
	b.WriteString(": ")
	if loc := FormatLocation(diag.Location); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	if diag.Code != "" {
		b.WriteString(diag.Code)
		b.WriteString(": ")
	}
	b.WriteString(strings.TrimSpace(diag.Message))
	for _, note := range diag.Notes {
		if loc := FormatLocation(note.Location); loc != "" {
			fmt.Fprintf(&b, "\nnote: %s %s", loc, note.Message)
		} else {
			fmt.Fprintf(&b, "\nnote: %s", note.Message)
		}
	}
	return b.String()
}

func FormatLocation(loc DiagnosticLocation) string {
	path := strings.TrimSpace(loc.Path)
	switch {
	case path != "" && loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("%s:%d:%d", path, loc.Line, loc.Column)
	case path != "" && loc.Line > 0:
		return fmt.Sprintf("%s:%d", path, loc.Line)
	case path != "":
		return path
	case loc.Line > 0 && loc.Column > 0:
		return fmt.Sprintf("line %d, column %d", loc.Line, loc.Column)
	case loc.Line > 0:
		return fmt.Sprintf("line %d", loc.Line)
	default:
		return ""
	}
}
