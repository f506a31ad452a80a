package interpreter

import (
	"math"
	"strconv"
	"strings"

	"dscript/interpreter-go/pkg/runtime"
)

// renderValue produces the text Print writes for a value.
func renderValue(val runtime.Value) string {
	var b strings.Builder
	writeValue(&b, val, map[*runtime.Cell]bool{})
	return b.String()
}

// RenderValue is renderValue for callers outside the package (the REPL).
func RenderValue(val runtime.Value) string {
	return renderValue(val)
}

func writeValue(b *strings.Builder, val runtime.Value, path map[*runtime.Cell]bool) {
	switch v := val.(type) {
	case nil, runtime.EmptyValue:
		b.WriteString("empty")
	case runtime.IntegerValue:
		b.WriteString(strconv.FormatInt(v.Val, 10))
	case runtime.RealValue:
		b.WriteString(formatReal(v.Val))
	case runtime.BoolValue:
		b.WriteString(strconv.FormatBool(v.Val))
	case runtime.StringValue:
		b.WriteString(ExpandEscapes(v.Val))
	case *runtime.ArrayValue:
		b.WriteByte('[')
		if v.SlotCount() > 0 {
			start := int64(1)
			if minKey, ok := v.MinKey(); ok && minKey < start {
				start = minKey
			}
			for key := start; key <= v.Len(); key++ {
				if key > start {
					b.WriteString(", ")
				}
				if cell, ok := v.Lookup(key); ok {
					writeCell(b, cell, path)
				} else {
					b.WriteString("empty")
				}
				if key == math.MaxInt64 {
					break
				}
			}
		}
		b.WriteByte(']')
	case *runtime.TupleValue:
		b.WriteByte('{')
		for pos := 0; pos < v.Len(); pos++ {
			if pos > 0 {
				b.WriteString(", ")
			}
			cell, name := v.At(pos)
			if name != "" {
				b.WriteString(name)
				b.WriteString(" := ")
			}
			writeCell(b, cell, path)
		}
		b.WriteByte('}')
	case *runtime.FunctionValue:
		b.WriteString("func (")
		b.WriteString(strings.Join(v.Node.Params, ", "))
		b.WriteByte(')')
	default:
		b.WriteString("<" + val.Kind().String() + ">")
	}
}

// writeCell renders an element, cutting cycles created by storing a
// container inside itself.
func writeCell(b *strings.Builder, cell *runtime.Cell, path map[*runtime.Cell]bool) {
	if path[cell] {
		b.WriteString("...")
		return
	}
	path[cell] = true
	writeValue(b, cell.Get(), path)
	delete(path, cell)
}

// formatReal follows the shortest-of-%e/%f rendering with six significant
// digits.
func formatReal(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// ExpandEscapes turns the backslash sequences kept in string values into the
// characters they denote. Unknown sequences are left as written.
func ExpandEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for idx := 0; idx < len(s); idx++ {
		ch := s[idx]
		if ch != '\\' || idx+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		idx++
		switch s[idx] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[idx])
		}
	}
	return b.String()
}
