package interpreter

import (
	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

func mismatch(op ast.BinaryOperator, left, right runtime.Value) error {
	return runtime.Errorf(runtime.ErrTypeMismatch, "operator '%s' is not defined for %s and %s", op, left.Kind(), right.Kind())
}

// numericPair promotes an int/real mix to reals. ok is false unless both
// operands are numeric.
func numericPair(left, right runtime.Value) (l, r float64, ints bool, li, ri int64, ok bool) {
	switch lv := left.(type) {
	case runtime.IntegerValue:
		switch rv := right.(type) {
		case runtime.IntegerValue:
			return 0, 0, true, lv.Val, rv.Val, true
		case runtime.RealValue:
			return float64(lv.Val), rv.Val, false, 0, 0, true
		}
	case runtime.RealValue:
		switch rv := right.(type) {
		case runtime.IntegerValue:
			return lv.Val, float64(rv.Val), false, 0, 0, true
		case runtime.RealValue:
			return lv.Val, rv.Val, false, 0, 0, true
		}
	}
	return 0, 0, false, 0, 0, false
}

func applyBinary(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSubtract, ast.OpMultiply, ast.OpDivide:
		return applyArithmetic(op, left, right)
	case ast.OpLess, ast.OpLessEqual, ast.OpGreater, ast.OpGreaterEqual:
		return applyOrdering(op, left, right)
	case ast.OpEqual, ast.OpNotEqual:
		eq, err := valuesEqual(op, left, right)
		if err != nil {
			return nil, err
		}
		if op == ast.OpNotEqual {
			eq = !eq
		}
		return runtime.BoolValue{Val: eq}, nil
	case ast.OpAnd, ast.OpOr, ast.OpXor:
		lb, lok := left.(runtime.BoolValue)
		rb, rok := right.(runtime.BoolValue)
		if !lok || !rok {
			return nil, mismatch(op, left, right)
		}
		switch op {
		case ast.OpAnd:
			return runtime.BoolValue{Val: lb.Val && rb.Val}, nil
		case ast.OpOr:
			return runtime.BoolValue{Val: lb.Val || rb.Val}, nil
		default:
			return runtime.BoolValue{Val: lb.Val != rb.Val}, nil
		}
	}
	return nil, runtime.Errorf(runtime.ErrInternal, "unknown operator %q", op)
}

func applyArithmetic(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	if op == ast.OpAdd {
		switch lv := left.(type) {
		case runtime.StringValue:
			if rv, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: lv.Val + rv.Val}, nil
			}
			return nil, mismatch(op, left, right)
		case *runtime.ArrayValue:
			if rv, ok := right.(*runtime.ArrayValue); ok {
				return lv.Concat(rv), nil
			}
			return nil, mismatch(op, left, right)
		case *runtime.TupleValue:
			if rv, ok := right.(*runtime.TupleValue); ok {
				return lv.Concat(rv)
			}
			return nil, mismatch(op, left, right)
		}
	}

	l, r, ints, li, ri, ok := numericPair(left, right)
	if !ok {
		return nil, mismatch(op, left, right)
	}
	if ints {
		switch op {
		case ast.OpAdd:
			return runtime.IntegerValue{Val: li + ri}, nil
		case ast.OpSubtract:
			return runtime.IntegerValue{Val: li - ri}, nil
		case ast.OpMultiply:
			return runtime.IntegerValue{Val: li * ri}, nil
		default:
			if ri == 0 {
				return nil, runtime.Errorf(runtime.ErrDivisionByZero, "integer division by zero")
			}
			return runtime.IntegerValue{Val: li / ri}, nil
		}
	}
	switch op {
	case ast.OpAdd:
		return runtime.RealValue{Val: l + r}, nil
	case ast.OpSubtract:
		return runtime.RealValue{Val: l - r}, nil
	case ast.OpMultiply:
		return runtime.RealValue{Val: l * r}, nil
	default:
		return runtime.RealValue{Val: l / r}, nil
	}
}

func applyOrdering(op ast.BinaryOperator, left, right runtime.Value) (runtime.Value, error) {
	l, r, ints, li, ri, ok := numericPair(left, right)
	if !ok {
		return nil, mismatch(op, left, right)
	}
	var cmp int
	switch {
	case ints && li < ri, !ints && l < r:
		cmp = -1
	case ints && li > ri, !ints && l > r:
		cmp = 1
	case ints || l == r:
		cmp = 0
	default:
		// NaN compares false every way
		return runtime.BoolValue{Val: false}, nil
	}
	var result bool
	switch op {
	case ast.OpLess:
		result = cmp < 0
	case ast.OpLessEqual:
		result = cmp <= 0
	case ast.OpGreater:
		result = cmp > 0
	default:
		result = cmp >= 0
	}
	return runtime.BoolValue{Val: result}, nil
}

func valuesEqual(op ast.BinaryOperator, left, right runtime.Value) (bool, error) {
	if l, r, ints, li, ri, ok := numericPair(left, right); ok {
		if ints {
			return li == ri, nil
		}
		return l == r, nil
	}
	switch lv := left.(type) {
	case runtime.StringValue:
		if rv, ok := right.(runtime.StringValue); ok {
			return lv.Val == rv.Val, nil
		}
	case runtime.BoolValue:
		if rv, ok := right.(runtime.BoolValue); ok {
			return lv.Val == rv.Val, nil
		}
	case runtime.EmptyValue:
		if _, ok := right.(runtime.EmptyValue); ok {
			return true, nil
		}
	}
	return false, mismatch(op, left, right)
}

func applyUnary(op ast.UnaryOperator, v runtime.Value) (runtime.Value, error) {
	switch op {
	case ast.UnaryPlus, ast.UnaryMinus:
		switch n := v.(type) {
		case runtime.IntegerValue:
			if op == ast.UnaryMinus {
				return runtime.IntegerValue{Val: -n.Val}, nil
			}
			return n, nil
		case runtime.RealValue:
			if op == ast.UnaryMinus {
				return runtime.RealValue{Val: -n.Val}, nil
			}
			return n, nil
		}
	case ast.UnaryNot:
		if b, ok := v.(runtime.BoolValue); ok {
			return runtime.BoolValue{Val: !b.Val}, nil
		}
	case ast.UnaryNone:
		return v, nil
	}
	return nil, runtime.Errorf(runtime.ErrTypeMismatch, "unary '%s' is not defined for %s", op, v.Kind())
}

var typeIndicatorKinds = map[ast.TypeIndicator]runtime.Kind{
	ast.TypeInt:    runtime.KindInteger,
	ast.TypeReal:   runtime.KindReal,
	ast.TypeBool:   runtime.KindBoolean,
	ast.TypeString: runtime.KindString,
	ast.TypeEmpty:  runtime.KindEmpty,
	ast.TypeArray:  runtime.KindArray,
	ast.TypeTuple:  runtime.KindTuple,
	ast.TypeFunc:   runtime.KindFunction,
}

// typeTest never fails; an unknown indicator simply matches nothing.
func typeTest(kind ast.TypeIndicator, v runtime.Value) runtime.Value {
	want, ok := typeIndicatorKinds[kind]
	return runtime.BoolValue{Val: ok && v.Kind() == want}
}

// applyInPlace implements += and -= by overwriting the handle's contents.
func applyInPlace(op ast.BinaryOperator, target *runtime.Cell, rhs runtime.Value) error {
	result, err := applyBinary(op, target.Get(), rhs)
	if err != nil {
		return err
	}
	target.Set(result)
	return nil
}
