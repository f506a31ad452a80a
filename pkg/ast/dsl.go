package ast

// Short builders used by tests and by the optimizer when it synthesises
// nodes. They mirror the shapes the parser produces.

func Prog(statements ...Statement) *Program {
	return NewProgram(NewBody(statements))
}

func Block(statements ...Statement) *Body {
	return NewBody(statements)
}

func Var(name string, init *Expression) *Declaration {
	return NewDeclaration(name, init)
}

func Set(target *Primary, value *Expression) *Assignment {
	return NewAssignment(target, AssignSet, value)
}

func AddTo(target *Primary, value *Expression) *Assignment {
	return NewAssignment(target, AssignAdd, value)
}

func SubFrom(target *Primary, value *Expression) *Assignment {
	return NewAssignment(target, AssignSubtract, value)
}

// Do wraps a primary (usually a call) as a statement.
func Do(target *Primary) *Assignment {
	return NewAssignment(target, AssignNone, nil)
}

func PrintOf(args ...*Expression) *Print {
	return NewPrint(args)
}

func IfThen(cond *Expression, then *Body, elseBody *Body) *If {
	return NewIf(cond, then, elseBody)
}

func ForIn(variable string, low, high *Expression, body *Body) *For {
	return NewFor(variable, low, high, body)
}

func WhileLoop(cond *Expression, body *Body) *While {
	return NewWhile(cond, body)
}

func Ret(value *Expression) *Return {
	return NewReturn(value)
}

func Brk() *Break {
	return NewBreak()
}

func Cont() *Continue {
	return NewContinue()
}

// Expression helpers.

// Bin builds a flat expression from alternating operands and operators:
// Bin(a, "+", b, "*", c).
func Bin(first *Unary, rest ...any) *Expression {
	operands := []*Unary{first}
	var operators []BinaryOperator
	for idx := 0; idx+1 < len(rest); idx += 2 {
		var op BinaryOperator
		switch o := rest[idx].(type) {
		case BinaryOperator:
			op = o
		case string:
			op = BinaryOperator(o)
		}
		operators = append(operators, op)
		operands = append(operands, toUnary(rest[idx+1]))
	}
	return NewExpression(operands, operators)
}

// E wraps a single operand as an expression.
func E(operand any) *Expression {
	return NewExpression([]*Unary{toUnary(operand)}, nil)
}

func toUnary(operand any) *Unary {
	switch v := operand.(type) {
	case *Unary:
		return v
	case *Primary:
		return U(v)
	case Literal:
		return U(Lit(v))
	case *Expression:
		return U(Paren(v))
	default:
		panic("ast: unsupported operand")
	}
}

func U(primary *Primary) *Unary {
	return NewUnary(UnaryNone, primary, "")
}

func Neg(primary *Primary) *Unary {
	return NewUnary(UnaryMinus, primary, "")
}

func Not(primary *Primary) *Unary {
	return NewUnary(UnaryNot, primary, "")
}

func Is(primary *Primary, kind TypeIndicator) *Unary {
	return NewUnary(UnaryNone, primary, kind)
}

func Ref(name string, tails ...*Tail) *Primary {
	return NewVariablePrimary(name, tails)
}

func Lit(literal Literal) *Primary {
	return NewLiteralPrimary(literal)
}

func Paren(inner *Expression) *Primary {
	return NewParenthesizedPrimary(inner)
}

func Index(i int64) *Tail {
	return NewTupleIndexTail(i)
}

func Field(name string) *Tail {
	return NewTupleNameTail(name)
}

func At(subscript *Expression) *Tail {
	return NewSubscriptTail(subscript)
}

func Call(args ...*Expression) *Tail {
	return NewCallTail(args)
}

// Literal helpers.

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Real(value float64) *RealLiteral {
	return NewRealLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Empty() *EmptyLiteral {
	return NewEmptyLiteral()
}

func Arr(elements ...*Expression) *ArrayLiteral {
	return NewArrayLiteral(elements)
}

func Tup(elements ...*TupleElement) *TupleLiteral {
	return NewTupleLiteral(elements)
}

func Elem(name string, value *Expression) *TupleElement {
	return NewTupleElement(name, value)
}

func Fn(params []string, statements ...Statement) *FunctionLiteral {
	return NewFunctionLiteral(params, NewBody(statements), nil)
}

func Lambda(params []string, body *Expression) *FunctionLiteral {
	return NewFunctionLiteral(params, nil, body)
}
