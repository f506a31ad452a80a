package interpreter

import (
	"math"
	"testing"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

func ints(values ...int64) []runtime.Value {
	out := make([]runtime.Value, len(values))
	for i, v := range values {
		out[i] = runtime.IntegerValue{Val: v}
	}
	return out
}

func TestReduceOperands(t *testing.T) {
	cases := []struct {
		name   string
		values []runtime.Value
		ops    []ast.BinaryOperator
		assoc  Associativity
		want   int64
	}{
		{"single", ints(7), nil, RightAssociative, 7},
		{"right subtraction", ints(10, 3, 2), []ast.BinaryOperator{ast.OpSubtract, ast.OpSubtract}, RightAssociative, 9},
		{"left subtraction", ints(10, 3, 2), []ast.BinaryOperator{ast.OpSubtract, ast.OpSubtract}, LeftAssociative, 5},
		{"right division", ints(100, 10, 5), []ast.BinaryOperator{ast.OpDivide, ast.OpDivide}, RightAssociative, 50},
		{"mixed precedence", ints(1, 2, 3, 4), []ast.BinaryOperator{ast.OpAdd, ast.OpMultiply, ast.OpSubtract}, RightAssociative, 3},
		{"mixed precedence left", ints(1, 2, 3, 4), []ast.BinaryOperator{ast.OpAdd, ast.OpMultiply, ast.OpSubtract}, LeftAssociative, 3},
		{"products then sums", ints(2, 3, 4, 5), []ast.BinaryOperator{ast.OpMultiply, ast.OpAdd, ast.OpMultiply}, RightAssociative, 26},
	}
	for _, tc := range cases {
		got, err := reduceOperands(tc.values, tc.ops, tc.assoc)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		iv, ok := got.(runtime.IntegerValue)
		if !ok || iv.Val != tc.want {
			t.Fatalf("%s: expected %d, got %#v", tc.name, tc.want, got)
		}
	}
}

func TestReducePrecedenceLevels(t *testing.T) {
	// 1 < 2 and 3 > 4 or true xor true
	values := []runtime.Value{
		runtime.IntegerValue{Val: 1}, runtime.IntegerValue{Val: 2},
		runtime.IntegerValue{Val: 3}, runtime.IntegerValue{Val: 4},
		runtime.BoolValue{Val: true}, runtime.BoolValue{Val: true},
	}
	ops := []ast.BinaryOperator{ast.OpLess, ast.OpAnd, ast.OpGreater, ast.OpOr, ast.OpXor}
	got, err := reduceOperands(values, ops, RightAssociative)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := got.(runtime.BoolValue); !ok || b.Val {
		t.Fatalf("expected false, got %#v", got)
	}
}

func TestArithmeticPromotion(t *testing.T) {
	got, err := applyBinary(ast.OpAdd, runtime.IntegerValue{Val: 1}, runtime.RealValue{Val: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rv, ok := got.(runtime.RealValue); !ok || rv.Val != 1.5 {
		t.Fatalf("expected 1.5, got %#v", got)
	}
	got, err = applyBinary(ast.OpDivide, runtime.RealValue{Val: 1}, runtime.IntegerValue{Val: 0})
	if err != nil {
		t.Fatalf("real division by zero must not fail: %v", err)
	}
	if rv := got.(runtime.RealValue); !math.IsInf(rv.Val, 1) {
		t.Fatalf("expected +Inf, got %v", rv.Val)
	}
}

func TestIntegerDivisionTruncates(t *testing.T) {
	got, err := applyBinary(ast.OpDivide, runtime.IntegerValue{Val: -7}, runtime.IntegerValue{Val: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(runtime.IntegerValue).Val != -3 {
		t.Fatalf("expected -3, got %#v", got)
	}
}

func TestInPlaceAddition(t *testing.T) {
	cell := runtime.NewCell(runtime.IntegerValue{Val: 1})
	alias := cell
	if err := applyInPlace(ast.OpAdd, cell, runtime.IntegerValue{Val: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alias.Get().(runtime.IntegerValue).Val != 3 {
		t.Fatalf("expected alias to observe 3, got %#v", alias.Get())
	}
}

func TestTypeTestNeverFails(t *testing.T) {
	fn := &runtime.FunctionValue{Node: ast.Lambda(nil, ast.E(ast.Int(1)))}
	checks := []struct {
		kind ast.TypeIndicator
		val  runtime.Value
		want bool
	}{
		{ast.TypeInt, runtime.IntegerValue{Val: 1}, true},
		{ast.TypeReal, runtime.IntegerValue{Val: 1}, false},
		{ast.TypeString, runtime.StringValue{Val: "s"}, true},
		{ast.TypeEmpty, runtime.EmptyValue{}, true},
		{ast.TypeArray, runtime.NewArray(), true},
		{ast.TypeFunc, fn, true},
		{ast.TypeTuple, fn, false},
		{ast.TypeIndicator("bogus"), runtime.EmptyValue{}, false},
	}
	for _, c := range checks {
		got := typeTest(c.kind, c.val).(runtime.BoolValue)
		if got.Val != c.want {
			t.Fatalf("%s on %s: expected %v", c.kind, c.val.Kind(), c.want)
		}
	}
}

func TestFormatReal(t *testing.T) {
	cases := map[float64]string{
		2.5:         "2.5",
		3:           "3",
		1.0 / 3:     "0.333333",
		1e6:         "1e+06",
		123456:      "123456",
		-0.0001:     "-0.0001",
		math.Inf(-1): "-inf",
	}
	for in, want := range cases {
		if got := formatReal(in); got != want {
			t.Fatalf("formatReal(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandEscapes(t *testing.T) {
	cases := map[string]string{
		`plain`:    "plain",
		`a\nb`:     "a\nb",
		`tab\there`: "tab\there",
		`q\"q`:     `q"q`,
		`back\\n`:  `back\n`,
		`odd\q`:    `odd\q`,
		`end\`:     `end\`,
	}
	for in, want := range cases {
		if got := ExpandEscapes(in); got != want {
			t.Fatalf("ExpandEscapes(%q) = %q, want %q", in, got, want)
		}
	}
}
