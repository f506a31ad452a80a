package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Each testdata/programs/NAME.ds runs with NAME.in as stdin (if present) and
// must print NAME.out. NAME.err, when present, names the expected error kind.
func TestProgramFixtures(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "programs")
	sources, err := filepath.Glob(filepath.Join(root, "*.ds"))
	if err != nil {
		t.Fatalf("listing fixtures: %v", err)
	}
	if len(sources) == 0 {
		t.Fatalf("no fixtures found under %s", root)
	}
	for _, src := range sources {
		name := strings.TrimSuffix(filepath.Base(src), ".ds")
		t.Run(name, func(t *testing.T) {
			base := strings.TrimSuffix(src, ".ds")
			source := readFixture(t, src, true)
			stdin := readFixture(t, base+".in", false)
			wantOut := readFixture(t, base+".out", true)
			wantErr := strings.TrimSpace(readFixture(t, base+".err", false))

			out, err := runSource(t, New(), source, stdin)
			if wantErr != "" {
				var rtErr *RuntimeError
				if !errors.As(err, &rtErr) || string(rtErr.Kind) != wantErr {
					t.Fatalf("expected %s error, got %v", wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out != wantOut {
				t.Fatalf("output mismatch\nwant: %q\ngot:  %q", wantOut, out)
			}
		})
	}
}

func readFixture(t *testing.T, path string, required bool) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return ""
		}
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
