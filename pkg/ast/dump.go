package ast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dump writes a line-oriented rendering of the tree: one node per line,
// indented two spaces per depth, `Kind attrs @line:col`.
func Dump(w io.Writer, node Node) error {
	bw := bufio.NewWriter(w)
	d := &dumper{w: bw}
	d.node(node, 0)
	if d.err != nil {
		return d.err
	}
	return bw.Flush()
}

// DumpString is Dump into a string.
func DumpString(node Node) string {
	var b strings.Builder
	_ = Dump(&b, node)
	return b.String()
}

type dumper struct {
	w   *bufio.Writer
	err error
}

func (d *dumper) line(depth int, node Node, attrs ...string) {
	if d.err != nil {
		return
	}
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(string(node.NodeType()))
	for _, attr := range attrs {
		if attr == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr)
	}
	if span := node.Span(); !span.IsZero() {
		b.WriteString(" @")
		b.WriteString(span.String())
	}
	b.WriteByte('\n')
	_, d.err = d.w.WriteString(b.String())
}

func (d *dumper) label(depth int, text string) {
	if d.err != nil {
		return
	}
	_, d.err = d.w.WriteString(strings.Repeat("  ", depth) + text + "\n")
}

func (d *dumper) node(node Node, depth int) {
	switch n := node.(type) {
	case nil:
		return
	case *Program:
		d.line(depth, n)
		d.node(n.Body, depth+1)
	case *Body:
		d.line(depth, n)
		for _, stmt := range n.Statements {
			d.node(stmt, depth+1)
		}
	case *Declaration:
		d.line(depth, n, n.Name)
		if n.Initializer != nil {
			d.node(n.Initializer, depth+1)
		}
	case *Assignment:
		d.line(depth, n, string(n.Operator))
		d.node(n.Target, depth+1)
		if n.Value != nil {
			d.node(n.Value, depth+1)
		}
	case *If:
		d.line(depth, n)
		d.node(n.Condition, depth+1)
		d.label(depth+1, "then:")
		d.node(n.Then, depth+2)
		if n.Else != nil {
			d.label(depth+1, "else:")
			d.node(n.Else, depth+2)
		}
	case *For:
		d.line(depth, n, n.Variable)
		d.node(n.Low, depth+1)
		d.node(n.High, depth+1)
		d.node(n.Body, depth+1)
	case *While:
		d.line(depth, n)
		d.node(n.Condition, depth+1)
		d.node(n.Body, depth+1)
	case *Print:
		d.line(depth, n)
		for _, arg := range n.Arguments {
			d.node(arg, depth+1)
		}
	case *Return:
		d.line(depth, n)
		if n.Value != nil {
			d.node(n.Value, depth+1)
		}
	case *Break:
		d.line(depth, n)
	case *Continue:
		d.line(depth, n)
	case *Expression:
		ops := make([]string, 0, len(n.Operators))
		for _, op := range n.Operators {
			ops = append(ops, string(op))
		}
		attr := ""
		if len(ops) > 0 {
			attr = "[" + strings.Join(ops, " ") + "]"
		}
		d.line(depth, n, attr)
		for _, operand := range n.Operands {
			d.node(operand, depth+1)
		}
	case *Unary:
		attrs := []string{string(n.Operator)}
		if n.TypeTest != "" {
			attrs = append(attrs, "is "+string(n.TypeTest))
		}
		d.line(depth, n, attrs...)
		d.node(n.Primary, depth+1)
	case *Primary:
		d.line(depth, n, string(n.Kind), n.Name)
		switch n.Kind {
		case PrimaryVariable:
			for _, tail := range n.Tails {
				d.node(tail, depth+1)
			}
		case PrimaryLiteral:
			d.node(n.Literal, depth+1)
		case PrimaryParenthesized:
			d.node(n.Inner, depth+1)
		}
	case *Tail:
		switch n.Kind {
		case TailTupleIndex:
			d.line(depth, n, string(n.Kind), strconv.FormatInt(n.Index, 10))
		case TailTupleName:
			d.line(depth, n, string(n.Kind), n.Name)
		case TailSubscript:
			d.line(depth, n, string(n.Kind))
			d.node(n.Subscript, depth+1)
		case TailCall:
			d.line(depth, n, string(n.Kind))
			for _, arg := range n.Arguments {
				d.node(arg, depth+1)
			}
		}
	case *IntegerLiteral:
		d.line(depth, n, strconv.FormatInt(n.Value, 10))
	case *RealLiteral:
		d.line(depth, n, strconv.FormatFloat(n.Value, 'g', -1, 64))
	case *BooleanLiteral:
		d.line(depth, n, strconv.FormatBool(n.Value))
	case *StringLiteral:
		d.line(depth, n, strconv.Quote(n.Value))
	case *EmptyLiteral:
		d.line(depth, n)
	case *ArrayLiteral:
		d.line(depth, n)
		for _, el := range n.Elements {
			d.node(el, depth+1)
		}
	case *TupleLiteral:
		d.line(depth, n)
		for _, el := range n.Elements {
			d.node(el, depth+1)
		}
	case *TupleElement:
		d.line(depth, n, n.Name)
		d.node(n.Value, depth+1)
	case *FunctionLiteral:
		d.line(depth, n, "("+strings.Join(n.Params, ", ")+")")
		if n.Body != nil {
			d.node(n.Body, depth+1)
		} else {
			d.node(n.ExprBody, depth+1)
		}
	default:
		d.label(depth, fmt.Sprintf("<unknown %T>", node))
	}
}
