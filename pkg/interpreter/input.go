package interpreter

import (
	"bufio"
	"io"
	"reflect"
	"strconv"
	"strings"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

// inputReader serves readInt, readReal and readString from one
// whitespace-delimited token stream.
type inputReader struct {
	src     io.Reader
	scanner *bufio.Scanner
	out     *bufio.Writer
}

func newInputReader(src io.Reader) *inputReader {
	scanner := bufio.NewScanner(src)
	scanner.Split(bufio.ScanWords)
	return &inputReader{src: src, scanner: scanner}
}

// sameReader reports whether a and b are the same stream. Readers whose
// dynamic type cannot be compared are treated as different streams.
func sameReader(a, b io.Reader) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func (r *inputReader) next(node ast.Node, what string) (string, error) {
	// pending output (usually a prompt) must be visible before blocking
	if r.out != nil {
		if err := r.out.Flush(); err != nil {
			return "", newRuntimeError(node, InputError, "flush output: %v", err)
		}
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", newRuntimeError(node, InputError, "reading %s: %v", what, err)
		}
		return "", newRuntimeError(node, InputError, "unexpected end of input reading %s", what)
	}
	return r.scanner.Text(), nil
}

func (i *Interpreter) readPrimary(p *ast.Primary) (runtime.Value, error) {
	if i.input == nil {
		i.input = newInputReader(strings.NewReader(""))
	}
	tok, err := i.input.next(p, string(p.Kind))
	if err != nil {
		return nil, err
	}
	switch p.Kind {
	case ast.PrimaryReadInt:
		n, perr := strconv.ParseInt(tok, 10, 64)
		if perr != nil {
			return nil, newRuntimeError(p, InputError, "readInt: invalid integer %q", tok)
		}
		return runtime.IntegerValue{Val: n}, nil
	case ast.PrimaryReadReal:
		f, perr := strconv.ParseFloat(tok, 64)
		if perr != nil {
			return nil, newRuntimeError(p, InputError, "readReal: invalid real %q", tok)
		}
		return runtime.RealValue{Val: f}, nil
	default:
		return runtime.StringValue{Val: tok}, nil
	}
}
