package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscript/interpreter-go/pkg/optimizer"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dscript.yml", `
entry: src/main.ds
optimize: true
passes: [constant-folding, Unreachable, constant-folding]
check: false
associativity: Left
max_call_depth: 128
log_level: debug
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "src/main.ds", cfg.Entry)
	assert.True(t, cfg.Optimize)
	assert.False(t, cfg.Check)
	assert.Equal(t, []string{optimizer.PassConstantFolding, optimizer.PassUnreachable}, cfg.Passes)
	assert.Equal(t, "left", cfg.Associativity)
	assert.Equal(t, 128, cfg.MaxCallDepth)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, filepath.Join(filepath.Dir(path), "src", "main.ds"), cfg.EntryPath())
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dscript.toml", `
entry = "main.ds"
optimize = true
associativity = "right"
max_call_depth = 64
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "main.ds", cfg.Entry)
	assert.True(t, cfg.Optimize)
	assert.True(t, cfg.Check, "omitted keys keep their defaults")
	assert.Equal(t, 64, cfg.MaxCallDepth)
	assert.Equal(t, optimizer.PassNames(), cfg.Passes)
}

func TestLoadConfigEmptyFileUsesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dscript.yaml", "")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	want := DefaultConfig()
	want.Path = cfg.Path
	assert.Equal(t, want, cfg)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadConfig(writeFile(t, dir, "dscript.yml", "optimise: true\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, dir, "dscript.toml", "optimise = true\n"))
	assert.Error(t, err)
}

func TestLoadConfigUnsupportedExtension(t *testing.T) {
	_, err := LoadConfig(writeFile(t, t.TempDir(), "dscript.json", "{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported extension")
}

func TestConfigValidationAggregatesIssues(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dscript.yml", `
entry: main.txt
passes: [inline, ""]
associativity: sideways
max_call_depth: -1
log_level: loud
`)
	_, err := LoadConfig(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	assert.Len(t, verr.Issues, 6)
	assert.Contains(t, err.Error(), "config validation failed:")
	assert.Contains(t, err.Error(), `unknown associativity "sideways"`)
}

func TestConfigRejectsCallDepthAboveLimit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "dscript.yml", "max_call_depth: 100000000\n")
	_, err := LoadConfig(path)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	require.Len(t, verr.Issues, 1)
	assert.Contains(t, verr.Issues[0], "max_call_depth must be at most 32768")

	path = writeFile(t, t.TempDir(), "dscript.yml", "max_call_depth: 32768\n")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 32768, cfg.MaxCallDepth)
}

func TestDefaultConfigIsValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestFindConfigWalksUpward(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "dscript.toml", "check = true\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	preferred := writeFile(t, root, "a/dscript.yml", "check: true\n")
	got, err = FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, preferred, got)
}
