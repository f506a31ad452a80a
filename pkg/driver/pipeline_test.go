package driver

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscript/interpreter-go/pkg/checker"
	"dscript/interpreter-go/pkg/interpreter"
)

func TestPipelineRun(t *testing.T) {
	var logs bytes.Buffer
	p := NewPipeline(DefaultConfig(), WithLogger(zerolog.New(&logs).Level(zerolog.DebugLevel)))
	var out strings.Builder
	diags, err := p.Run("main.ds", `var n := readInt; print n * 2`, strings.NewReader("21"), &out)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, "42", out.String())
	for _, phase := range []string{`"phase":"parse"`, `"phase":"check"`, `"phase":"execute"`} {
		assert.Contains(t, logs.String(), phase)
	}
	assert.NotContains(t, logs.String(), `"phase":"optimize"`)
}

func TestPipelineSyntaxError(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	_, diags, err := p.Compile("bad.ds", "var := 1")
	require.Error(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, CodeSyntax, diags[0].Code)
	assert.Equal(t, DiagnosticLocation{Path: "bad.ds", Line: 1, Column: 5}, diags[0].Location)
}

func TestPipelineCheckErrorsBlockExecution(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	var out strings.Builder
	diags, err := p.Run("main.ds", "print 1\nbreak", nil, &out)
	assert.True(t, errors.Is(err, ErrCheckFailed))
	require.Len(t, diags, 1)
	assert.Equal(t, checker.CodeBreakOutsideLoop, diags[0].Code)
	assert.Empty(t, out.String())
}

func TestPipelineWarningsDoNotBlock(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	var out strings.Builder
	diags, err := p.Run("main.ds", "print 1; return; print 2", nil, &out)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityWarning, diags[0].Severity)
	assert.Equal(t, "1", out.String())
}

func TestPipelineWithoutChecksReportsRuntimeError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Check = false
	p := NewPipeline(cfg)
	var out strings.Builder
	diags, err := p.Run("main.ds", "print 1\nbreak", nil, &out)
	assert.True(t, interpreter.IsKind(err, interpreter.ControlFlowEscape))
	require.Len(t, diags, 1)
	assert.Equal(t, "ControlFlowEscape", diags[0].Code)
	assert.Equal(t, "1", out.String())
}

func TestPipelineOptimizesWhenEnabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Optimize = true
	cfg.Associativity = "left"
	p := NewPipeline(cfg)
	program, diags, err := p.Compile("main.ds", "print 10 - 3 - 2")
	require.NoError(t, err)
	assert.Empty(t, diags)

	var out strings.Builder
	_, err = p.Execute("main.ds", program, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "5", out.String())
}

func TestPipelineKeepsGlobalsBetweenRuns(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	var out strings.Builder
	_, err := p.Run("<repl>", "var total := 40", nil, &out)
	require.NoError(t, err)
	_, err = p.Run("<repl>", "total += 2; print total", nil, &out)
	require.NoError(t, err)
	_, err = p.Run("<repl>", "var total := 0; print total", nil, &out)
	require.NoError(t, err, "redeclaring an earlier global is allowed")
	assert.Equal(t, "420", out.String())
}

func TestPipelineMaxCallDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxCallDepth = 10
	p := NewPipeline(cfg)
	var out strings.Builder
	_, err := p.Run("main.ds", "var f := func (n) => f(n + 1); print f(0)", nil, &out)
	assert.True(t, interpreter.IsKind(err, interpreter.StackOverflow))
}
