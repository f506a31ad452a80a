package interpreter

import (
	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

// evaluateExpression returns a handle. A lone operand without operators
// yields the operand's own handle so declarations and arguments alias it;
// anything computed gets a fresh handle.
func (i *Interpreter) evaluateExpression(expr *ast.Expression) (*runtime.Cell, error) {
	if expr == nil {
		return nil, newRuntimeError(nil, Internal, "missing expression")
	}
	if len(expr.Operands) == 0 {
		return nil, newRuntimeError(expr, Internal, "empty expression")
	}
	if len(expr.Operands) != len(expr.Operators)+1 {
		return nil, newRuntimeError(expr, Internal, "expression has %d operands and %d operators", len(expr.Operands), len(expr.Operators))
	}
	if len(expr.Operands) == 1 {
		return i.evaluateUnary(expr.Operands[0])
	}

	values := make([]runtime.Value, len(expr.Operands))
	for idx, operand := range expr.Operands {
		cell, err := i.evaluateUnary(operand)
		if err != nil {
			return nil, err
		}
		values[idx] = cell.Get()
	}
	result, err := reduceOperands(values, expr.Operators, i.associativity)
	if err != nil {
		return nil, locate(expr, err)
	}
	return runtime.NewCell(result), nil
}

var precedence = map[ast.BinaryOperator]int{
	ast.OpMultiply:     4,
	ast.OpDivide:       4,
	ast.OpAdd:          3,
	ast.OpSubtract:     3,
	ast.OpLess:         2,
	ast.OpLessEqual:    2,
	ast.OpGreater:      2,
	ast.OpGreaterEqual: 2,
	ast.OpEqual:        2,
	ast.OpNotEqual:     2,
	ast.OpAnd:          1,
	ast.OpXor:          0,
	ast.OpOr:           -1,
}

// reduceOperands folds operands with a value stack and an operator stack.
// Pending operators are applied while the incoming operator binds strictly
// looser than the top of the stack (or equally loose, for left
// associativity); whatever remains is applied top to bottom.
func reduceOperands(values []runtime.Value, operators []ast.BinaryOperator, assoc Associativity) (runtime.Value, error) {
	valueStack := make([]runtime.Value, 0, len(values))
	opStack := make([]ast.BinaryOperator, 0, len(operators))

	apply := func() error {
		op := opStack[len(opStack)-1]
		opStack = opStack[:len(opStack)-1]
		right := valueStack[len(valueStack)-1]
		left := valueStack[len(valueStack)-2]
		valueStack = valueStack[:len(valueStack)-2]
		result, err := applyBinary(op, left, right)
		if err != nil {
			return err
		}
		valueStack = append(valueStack, result)
		return nil
	}

	valueStack = append(valueStack, values[0])
	for idx, op := range operators {
		prec, ok := precedence[op]
		if !ok {
			return nil, runtime.Errorf(runtime.ErrInternal, "unknown operator %q", op)
		}
		for len(opStack) > 0 {
			top := precedence[opStack[len(opStack)-1]]
			if prec < top || (assoc == LeftAssociative && prec == top) {
				if err := apply(); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
		opStack = append(opStack, op)
		valueStack = append(valueStack, values[idx+1])
	}
	for len(opStack) > 0 {
		if err := apply(); err != nil {
			return nil, err
		}
	}
	return valueStack[0], nil
}

func (i *Interpreter) evaluateUnary(u *ast.Unary) (*runtime.Cell, error) {
	cell, err := i.resolvePrimary(u.Primary)
	if err != nil {
		return nil, err
	}
	if u.TypeTest == "" && u.Operator == ast.UnaryNone {
		return cell, nil
	}
	value := cell.Get()
	if u.TypeTest != "" {
		value = typeTest(u.TypeTest, value)
	}
	if u.Operator != ast.UnaryNone {
		value, err = applyUnary(u.Operator, value)
		if err != nil {
			return nil, locate(u, err)
		}
	}
	return runtime.NewCell(value), nil
}

// resolvePrimary returns the handle a primary denotes, following tails left
// to right.
func (i *Interpreter) resolvePrimary(p *ast.Primary) (*runtime.Cell, error) {
	switch p.Kind {
	case ast.PrimaryReadInt, ast.PrimaryReadReal, ast.PrimaryReadString:
		value, err := i.readPrimary(p)
		if err != nil {
			return nil, err
		}
		return runtime.NewCell(value), nil
	case ast.PrimaryLiteral:
		return i.evaluateLiteral(p.Literal)
	case ast.PrimaryParenthesized:
		return i.evaluateExpression(p.Inner)
	case ast.PrimaryVariable:
		cell, err := i.scopes.Lookup(p.Name)
		if err != nil {
			return nil, locate(p, err)
		}
		for _, tail := range p.Tails {
			cell, err = i.applyTail(cell, tail)
			if err != nil {
				return nil, err
			}
		}
		return cell, nil
	default:
		return nil, newRuntimeError(p, Internal, "unknown primary kind %q", p.Kind)
	}
}

func (i *Interpreter) applyTail(cell *runtime.Cell, tail *ast.Tail) (*runtime.Cell, error) {
	current := cell.Get()
	switch tail.Kind {
	case ast.TailTupleIndex:
		tuple, ok := current.(*runtime.TupleValue)
		if !ok {
			return nil, newRuntimeError(tail, TypeMismatch, "cannot access .%d on %s", tail.Index, current.Kind())
		}
		found, err := tuple.Index(tail.Index)
		return found, locate(tail, err)
	case ast.TailTupleName:
		tuple, ok := current.(*runtime.TupleValue)
		if !ok {
			return nil, newRuntimeError(tail, TypeMismatch, "cannot access .%s on %s", tail.Name, current.Kind())
		}
		found, err := tuple.Field(tail.Name)
		return found, locate(tail, err)
	case ast.TailSubscript:
		keyCell, err := i.evaluateExpression(tail.Subscript)
		if err != nil {
			return nil, err
		}
		arr, ok := current.(*runtime.ArrayValue)
		if !ok {
			return nil, newRuntimeError(tail, TypeMismatch, "cannot subscript %s", current.Kind())
		}
		key, ok := keyCell.Get().(runtime.IntegerValue)
		if !ok {
			return nil, newRuntimeError(tail.Subscript, TypeMismatch, "array subscript must be int, got %s", keyCell.Get().Kind())
		}
		return arr.Slot(key.Val), nil
	case ast.TailCall:
		fn, ok := current.(*runtime.FunctionValue)
		if !ok {
			return nil, newRuntimeError(tail, TypeMismatch, "cannot call a value of kind %s", current.Kind())
		}
		args := make([]*runtime.Cell, len(tail.Arguments))
		for idx, arg := range tail.Arguments {
			argCell, err := i.evaluateExpression(arg)
			if err != nil {
				return nil, err
			}
			args[idx] = argCell
		}
		return i.invokeFunction(fn, args, tail)
	default:
		return nil, newRuntimeError(tail, Internal, "unknown tail kind %q", tail.Kind)
	}
}

// invokeFunction runs fn in a frame seeded with its captured bindings and
// then the arguments. Parameters alias the argument handles.
func (i *Interpreter) invokeFunction(fn *runtime.FunctionValue, args []*runtime.Cell, call *ast.Tail) (*runtime.Cell, error) {
	if len(args) != fn.Arity() {
		return nil, newRuntimeError(call, ArityMismatch, "function expects %d arguments, got %d", fn.Arity(), len(args))
	}
	if i.callDepth >= i.maxCallDepth {
		return nil, newRuntimeError(call, StackOverflow, "call depth exceeded %d", i.maxCallDepth)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()
	i.logger.Trace().Int("depth", i.callDepth).Str("span", fn.Node.Span().String()).Msg("call")

	bindings := make(map[string]*runtime.Cell, len(fn.Captured)+len(args))
	for name, cell := range fn.Captured {
		bindings[name] = cell
	}
	for idx, param := range fn.Node.Params {
		bindings[param] = args[idx]
	}
	i.scopes.OpenWith(fn.Node, bindings)

	var (
		result *runtime.Cell
		err    error
	)
	if fn.Node.IsLambda() {
		result, err = i.evaluateExpression(fn.Node.ExprBody)
	} else if fn.Node.Body != nil {
		err = i.execStatements(fn.Node.Body.Statements)
	}
	if closeErr := i.scopes.Close(fn.Node); closeErr != nil && err == nil {
		err = locate(fn.Node, closeErr)
	}

	switch sig := err.(type) {
	case nil:
	case returnSignal:
		result = sig.value
	case *RuntimeError:
		if call != nil && len(sig.Calls) < 16 {
			sig.Calls = append(sig.Calls, call.Span())
		}
		return nil, sig
	default:
		return nil, escapeError(err)
	}
	if result == nil {
		result = runtime.NewCell(runtime.EmptyValue{})
	}
	return result, nil
}

func (i *Interpreter) evaluateLiteral(lit ast.Literal) (*runtime.Cell, error) {
	switch l := lit.(type) {
	case *ast.IntegerLiteral:
		return runtime.NewCell(runtime.IntegerValue{Val: l.Value}), nil
	case *ast.RealLiteral:
		return runtime.NewCell(runtime.RealValue{Val: l.Value}), nil
	case *ast.BooleanLiteral:
		return runtime.NewCell(runtime.BoolValue{Val: l.Value}), nil
	case *ast.StringLiteral:
		return runtime.NewCell(runtime.StringValue{Val: l.Value}), nil
	case *ast.EmptyLiteral:
		return runtime.NewCell(runtime.EmptyValue{}), nil
	case *ast.ArrayLiteral:
		cells := make([]*runtime.Cell, len(l.Elements))
		for idx, el := range l.Elements {
			cell, err := i.evaluateExpression(el)
			if err != nil {
				return nil, err
			}
			cells[idx] = cell
		}
		return runtime.NewCell(runtime.NewArray(cells...)), nil
	case *ast.TupleLiteral:
		fields := make([]runtime.TupleField, len(l.Elements))
		for idx, el := range l.Elements {
			cell, err := i.evaluateExpression(el.Value)
			if err != nil {
				return nil, err
			}
			fields[idx] = runtime.TupleField{Name: el.Name, Cell: cell}
		}
		tuple, err := runtime.NewTuple(fields)
		if err != nil {
			return nil, locate(l, err)
		}
		return runtime.NewCell(tuple), nil
	case *ast.FunctionLiteral:
		return runtime.NewCell(&runtime.FunctionValue{Node: l, Captured: i.scopes.Snapshot()}), nil
	default:
		return nil, newRuntimeError(lit, Internal, "unsupported literal %T", lit)
	}
}
