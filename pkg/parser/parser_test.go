package parser_test

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/parser"
)

var treeOptions = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
	cmp.FilterPath(func(path cmp.Path) bool {
		field, ok := path.Last().(cmp.StructField)
		return ok && field.Name() == "Location"
	}, cmp.Ignore()),
}

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource("test.ds", source)
	require.NoError(t, err)
	return program
}

func assertTree(t *testing.T, want, got *ast.Program) {
	t.Helper()
	if diff := cmp.Diff(want, got, treeOptions...); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeclarations(t *testing.T) {
	got := mustParse(t, `var x := 10, y; var z`)
	want := ast.Prog(
		ast.Var("x", ast.E(ast.Int(10))),
		ast.Var("y", nil),
		ast.Var("z", nil),
	)
	assertTree(t, want, got)
}

func TestParseFlatExpression(t *testing.T) {
	got := mustParse(t, `var r := 10 - 3 - 2 * -x is int`)
	want := ast.Prog(
		ast.Var("r", ast.Bin(
			ast.U(ast.Lit(ast.Int(10))),
			"-", ast.Int(3),
			"-", ast.Int(2),
			"*", ast.NewUnary(ast.UnaryMinus, ast.Ref("x"), ast.TypeInt),
		)),
	)
	assertTree(t, want, got)
}

func TestParseAssignmentsAndCalls(t *testing.T) {
	got := mustParse(t, `
a[1].2.name := 5
b += 1
c -= 2
f(1, g())
`)
	want := ast.Prog(
		ast.Set(ast.Ref("a", ast.At(ast.E(ast.Int(1))), ast.Index(2), ast.Field("name")), ast.E(ast.Int(5))),
		ast.AddTo(ast.Ref("b"), ast.E(ast.Int(1))),
		ast.SubFrom(ast.Ref("c"), ast.E(ast.Int(2))),
		ast.Do(ast.Ref("f", ast.Call(ast.E(ast.Int(1)), ast.E(ast.Ref("g", ast.Call()))))),
	)
	assertTree(t, want, got)
}

func TestParseControlFlow(t *testing.T) {
	got := mustParse(t, `
for i in 1..n loop
  if i = 3 then continue else print i end
  while true loop break end
end
return
`)
	want := ast.Prog(
		ast.ForIn("i", ast.E(ast.Int(1)), ast.E(ast.Ref("n")), ast.Block(
			ast.IfThen(
				ast.Bin(ast.U(ast.Ref("i")), "=", ast.Int(3)),
				ast.Block(ast.Cont()),
				ast.Block(ast.PrintOf(ast.E(ast.Ref("i")))),
			),
			ast.WhileLoop(ast.E(ast.Bool(true)), ast.Block(ast.Brk())),
		)),
		ast.Ret(nil),
	)
	assertTree(t, want, got)
}

func TestParseLiterals(t *testing.T) {
	got := mustParse(t, `print [1, 2.5, "s"], {a := 1, 2}, empty, func (x, y) => x + y, func is return 1 end`)
	want := ast.Prog(
		ast.PrintOf(
			ast.E(ast.Arr(ast.E(ast.Int(1)), ast.E(ast.Real(2.5)), ast.E(ast.Str("s")))),
			ast.E(ast.Tup(ast.Elem("a", ast.E(ast.Int(1))), ast.Elem("", ast.E(ast.Int(2))))),
			ast.E(ast.Empty()),
			ast.E(ast.Lambda([]string{"x", "y"}, ast.Bin(ast.U(ast.Ref("x")), "+", ast.Ref("y")))),
			ast.E(ast.Fn(nil, ast.Ret(ast.E(ast.Int(1))))),
		),
	)
	assertTree(t, want, got)
}

func TestParseTypeIndicators(t *testing.T) {
	got := mustParse(t, `print a is [], b is {}, not c is func`)
	want := ast.Prog(
		ast.PrintOf(
			ast.E(ast.Is(ast.Ref("a"), ast.TypeArray)),
			ast.E(ast.Is(ast.Ref("b"), ast.TypeTuple)),
			ast.E(ast.NewUnary(ast.UnaryNot, ast.Ref("c"), ast.TypeFunc)),
		),
	)
	assertTree(t, want, got)
}

func TestParseReadPrimaries(t *testing.T) {
	got := mustParse(t, `var n := readInt; var r := readReal + 1; var s := readString`)
	want := ast.Prog(
		ast.Var("n", ast.E(ast.NewReadPrimary(ast.PrimaryReadInt))),
		ast.Var("r", ast.Bin(ast.U(ast.NewReadPrimary(ast.PrimaryReadReal)), "+", ast.Int(1))),
		ast.Var("s", ast.E(ast.NewReadPrimary(ast.PrimaryReadString))),
	)
	assertTree(t, want, got)
}

func TestParseSpans(t *testing.T) {
	program := mustParse(t, "var x := 1\nprint x")
	require.Len(t, program.Body.Statements, 2)
	decl := program.Body.Statements[0]
	assert.Equal(t, ast.Position{Line: 1, Column: 5}, decl.Span().Start)
	printStmt := program.Body.Statements[1]
	assert.Equal(t, ast.Position{Line: 2, Column: 1}, printStmt.Span().Start)
	assert.Equal(t, ast.Position{Line: 2, Column: 8}, printStmt.Span().End)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		source     string
		message    string
		incomplete bool
	}{
		{source: `x`, message: `expected ':=', '+=', '-=' or a call, found end of input`, incomplete: true},
		{source: `if x then print 1`, message: `expected 'end', found end of input`, incomplete: true},
		{source: `var := 1`, message: `expected identifier after 'var', found ":="`},
		{source: `print 1 +`, message: `expected expression, found end of input`, incomplete: true},
		{source: `print "open`, message: `unterminated string literal`},
		{source: `for i in 1 loop end`, message: `expected '..' in range, found "loop"`},
		{source: `print x is 3`, message: `expected type indicator after 'is', found "3"`},
	}
	for _, tc := range cases {
		_, err := parser.ParseSource("bad.ds", tc.source)
		require.Error(t, err, tc.source)
		var perr *parser.Error
		require.ErrorAs(t, err, &perr, tc.source)
		assert.Equal(t, tc.message, perr.Message, tc.source)
		assert.Equal(t, tc.incomplete, parser.IsIncomplete(err), tc.source)
		assert.Equal(t, "bad.ds", perr.Path)
	}
}
