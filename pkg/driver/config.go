package driver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/naoina/toml"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"dscript/interpreter-go/pkg/interpreter"
	"dscript/interpreter-go/pkg/optimizer"
)

// ConfigFileNames are the names FindConfig looks for, in priority order.
var ConfigFileNames = []string{"dscript.yml", "dscript.yaml", "dscript.toml"}

// Config holds the toolchain settings read from dscript.yml or dscript.toml.
type Config struct {
	Path          string
	Entry         string
	Optimize      bool
	Passes        []string
	Check         bool
	Associativity string
	MaxCallDepth  int
	LogLevel      string
}

// DefaultConfig is used when no configuration file is present.
func DefaultConfig() Config {
	return Config{
		Optimize:      false,
		Passes:        optimizer.PassNames(),
		Check:         true,
		Associativity: interpreter.RightAssociative.String(),
		MaxCallDepth:  interpreter.DefaultMaxCallDepth,
		LogLevel:      zerolog.WarnLevel.String(),
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type configFile struct {
	Entry         string   `yaml:"entry" toml:"entry"`
	Optimize      *bool    `yaml:"optimize" toml:"optimize"`
	Passes        []string `yaml:"passes" toml:"passes"`
	Check         *bool    `yaml:"check" toml:"check"`
	Associativity string   `yaml:"associativity" toml:"associativity"`
	MaxCallDepth  *int     `yaml:"max_call_depth" toml:"max_call_depth"`
	LogLevel      string   `yaml:"log_level" toml:"log_level"`
}

// TOML keys must match the snake_case tags exactly; unknown keys are errors.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

// LoadConfig parses a YAML or TOML configuration file (chosen by extension),
// applies defaults for omitted keys and validates the result.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return Config{}, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	var raw configFile
	switch strings.ToLower(filepath.Ext(absPath)) {
	case ".yml", ".yaml":
		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
	case ".toml":
		if err := tomlSettings.NewDecoder(bufio.NewReader(file)).Decode(&raw); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", absPath, err)
		}
	default:
		return Config{}, fmt.Errorf("config: %s: unsupported extension (want .yml, .yaml or .toml)", absPath)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (raw configFile) toConfig(path string) Config {
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Entry = strings.TrimSpace(raw.Entry)
	if raw.Optimize != nil {
		cfg.Optimize = *raw.Optimize
	}
	if raw.Passes != nil {
		cfg.Passes = normalizeNames(raw.Passes)
	}
	if raw.Check != nil {
		cfg.Check = *raw.Check
	}
	if s := strings.TrimSpace(raw.Associativity); s != "" {
		cfg.Associativity = strings.ToLower(s)
	}
	if raw.MaxCallDepth != nil {
		cfg.MaxCallDepth = *raw.MaxCallDepth
	}
	if s := strings.TrimSpace(raw.LogLevel); s != "" {
		cfg.LogLevel = strings.ToLower(s)
	}
	return cfg
}

func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs ValidationError
	if _, err := interpreter.ParseAssociativity(c.Associativity); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("associativity: %v", err))
	}
	for idx, pass := range c.Passes {
		if pass == "" {
			errs.Issues = append(errs.Issues, fmt.Sprintf("passes[%d] must be a non-empty string", idx))
			continue
		}
		if err := optimizer.ValidatePasses([]string{pass}); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("passes[%d]: %v", idx, err))
		}
	}
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must not be negative, got %d", c.MaxCallDepth))
	}
	if c.MaxCallDepth > interpreter.MaxCallDepthLimit {
		errs.Issues = append(errs.Issues, fmt.Sprintf("max_call_depth must be at most %d, got %d", interpreter.MaxCallDepthLimit, c.MaxCallDepth))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level: %v", err))
	}
	if c.Entry != "" && filepath.Ext(c.Entry) != ".ds" {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must be a .ds file", c.Entry))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// EntryPath resolves the entry script relative to the configuration file.
func (c Config) EntryPath() string {
	if c.Entry == "" || filepath.IsAbs(c.Entry) || c.Path == "" {
		return c.Entry
	}
	return filepath.Join(filepath.Dir(c.Path), c.Entry)
}

// Level returns the configured log level, falling back to warn.
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.WarnLevel
	}
	return level
}

// FindConfig walks from dir towards the filesystem root and returns the
// first configuration file found, or "" when there is none.
func FindConfig(dir string) (string, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("config: resolve %s: %w", dir, err)
	}
	for current := start; ; {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(current, name)
			info, err := os.Stat(candidate)
			if err == nil && !info.IsDir() {
				return candidate, nil
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config: stat %s: %w", candidate, err)
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}
