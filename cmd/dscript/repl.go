package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"dscript/interpreter-go/pkg/driver"
	"dscript/interpreter-go/pkg/parser"
)

const (
	historyFile = ".dscript_history"
	promptMain  = "dscript> "
	promptCont  = "     ... "
	promptInput = "   input> "
	replPath    = "<repl>"
)

// lineReader is the part of liner.State the loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func replCommand(env *cliEnv, c *cli.Context) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)
	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintf(env.stdout, "dscript %s. Type :quit to exit.\n", cliToolVersion)
	env.repl(ln)
	return nil
}

// repl evaluates entries until end of input. Every entry runs in the same
// pipeline, so globals declared by earlier entries stay visible.
func (env *cliEnv) repl(lines lineReader) {
	p := env.pipeline()
	out := &lineTracker{w: env.stdout}
	for {
		src, ok := readEntry(lines)
		if !ok {
			fmt.Fprintln(env.stdout)
			return
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		lines.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if !env.replCommand(p, trimmed) {
				return
			}
			continue
		}
		out.dirty = false
		diags, _ := p.Run(replPath, src, &promptReader{lines: lines, out: out}, out)
		if out.dirty && !out.endsWithNewline {
			fmt.Fprintln(env.stdout)
		}
		env.printDiagnostics(diags)
	}
}

// replCommand handles a colon command and reports whether to keep going.
func (env *cliEnv) replCommand(p *driver.Pipeline, cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q":
		return false
	case ":globals":
		for _, name := range p.Interpreter().Scopes().GlobalNames() {
			fmt.Fprintln(env.stdout, name)
		}
	default:
		fmt.Fprintln(env.stdout, "unknown command. Commands: :globals, :quit")
	}
	return true
}

// readEntry keeps prompting while the accumulated text is an unfinished
// program.
func readEntry(lines lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := lines.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseSource(replPath, src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}

// promptReader feeds program reads from the line editor, so the editor stays
// the only consumer of the terminal. Each entry gets its own reader; tokens
// left unread at the end of an entry are dropped.
type promptReader struct {
	lines   lineReader
	out     *lineTracker
	pending []byte
}

func (r *promptReader) Read(p []byte) (int, error) {
	if len(r.pending) == 0 {
		line, err := r.lines.Prompt(promptInput)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return 0, io.EOF
			}
			return 0, err
		}
		r.out.endsWithNewline = true
		r.pending = append([]byte(line), '\n')
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

// lineTracker remembers whether the last byte written was a newline so the
// prompt never ends up glued to program output.
type lineTracker struct {
	w               io.Writer
	dirty           bool
	endsWithNewline bool
}

func (t *lineTracker) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.dirty = true
		t.endsWithNewline = p[len(p)-1] == '\n'
	}
	return t.w.Write(p)
}
