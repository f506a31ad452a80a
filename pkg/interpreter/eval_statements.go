package interpreter

import (
	"math"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/runtime"
)

func (i *Interpreter) execStatements(statements []ast.Statement) error {
	for _, stmt := range statements {
		if err := i.evaluateStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) evaluateStatement(node ast.Statement) error {
	switch n := node.(type) {
	case *ast.Declaration:
		return i.evaluateDeclaration(n)
	case *ast.Assignment:
		return i.evaluateAssignment(n)
	case *ast.If:
		return i.evaluateIf(n)
	case *ast.For:
		return i.evaluateForLoop(n)
	case *ast.While:
		return i.evaluateWhileLoop(n)
	case *ast.Print:
		return i.evaluatePrint(n)
	case *ast.Return:
		return i.evaluateReturn(n)
	case *ast.Break:
		return breakSignal{node: n}
	case *ast.Continue:
		return continueSignal{node: n}
	case *ast.Body:
		return i.evaluateBlock(n)
	default:
		return newRuntimeError(node, Internal, "unsupported statement %T", node)
	}
}

// evaluateBlock runs a body in its own frame.
func (i *Interpreter) evaluateBlock(body *ast.Body) error {
	if body == nil {
		return nil
	}
	i.scopes.Open(body)
	err := i.execStatements(body.Statements)
	if closeErr := i.scopes.Close(body); closeErr != nil && err == nil {
		err = locate(body, closeErr)
	}
	return err
}

func (i *Interpreter) evaluateDeclaration(decl *ast.Declaration) error {
	if decl.Initializer == nil {
		i.scopes.Bind(decl.Name, runtime.NewCell(runtime.EmptyValue{}))
		return nil
	}
	cell, err := i.evaluateExpression(decl.Initializer)
	if err != nil {
		return err
	}
	i.scopes.Bind(decl.Name, cell)
	// a function declared this way can refer to itself wherever it is called
	if fn, ok := cell.Get().(*runtime.FunctionValue); ok && directFunctionLiteral(decl.Initializer) == fn.Node {
		fn.Captured[decl.Name] = cell
	}
	return nil
}

func directFunctionLiteral(expr *ast.Expression) *ast.FunctionLiteral {
	if expr == nil || len(expr.Operands) != 1 {
		return nil
	}
	u := expr.Operands[0]
	if u.Operator != ast.UnaryNone || u.TypeTest != "" || u.Primary == nil || u.Primary.Kind != ast.PrimaryLiteral {
		return nil
	}
	fn, _ := u.Primary.Literal.(*ast.FunctionLiteral)
	return fn
}

// evaluateAssignment writes through the target's handle, so every alias of
// that handle observes the new contents.
func (i *Interpreter) evaluateAssignment(assign *ast.Assignment) error {
	target, err := i.resolvePrimary(assign.Target)
	if err != nil {
		return err
	}
	if assign.Operator == ast.AssignNone || assign.Value == nil {
		return nil
	}
	value, err := i.evaluateExpression(assign.Value)
	if err != nil {
		return err
	}
	switch assign.Operator {
	case ast.AssignSet:
		target.Set(value.Get())
	case ast.AssignAdd:
		return locate(assign, applyInPlace(ast.OpAdd, target, value.Get()))
	case ast.AssignSubtract:
		return locate(assign, applyInPlace(ast.OpSubtract, target, value.Get()))
	default:
		return newRuntimeError(assign, Internal, "unknown assignment operator %q", assign.Operator)
	}
	return nil
}

func (i *Interpreter) evaluateCondition(expr *ast.Expression, context string) (bool, error) {
	cell, err := i.evaluateExpression(expr)
	if err != nil {
		return false, err
	}
	b, ok := cell.Get().(runtime.BoolValue)
	if !ok {
		return false, newRuntimeError(expr, NotBoolean, "%s condition must be bool, got %s", context, cell.Get().Kind())
	}
	return b.Val, nil
}

func (i *Interpreter) evaluateIf(stmt *ast.If) error {
	cond, err := i.evaluateCondition(stmt.Condition, "if")
	if err != nil {
		return err
	}
	if cond {
		return i.evaluateBlock(stmt.Then)
	}
	if stmt.Else != nil {
		return i.evaluateBlock(stmt.Else)
	}
	return nil
}

func (i *Interpreter) evaluateRangeBound(expr *ast.Expression, which string) (int64, error) {
	cell, err := i.evaluateExpression(expr)
	if err != nil {
		return 0, err
	}
	n, ok := cell.Get().(runtime.IntegerValue)
	if !ok {
		return 0, newRuntimeError(expr, RangeBoundNotInteger, "%s bound of range must be int, got %s", which, cell.Get().Kind())
	}
	return n.Val, nil
}

func (i *Interpreter) evaluateForLoop(loop *ast.For) error {
	low, err := i.evaluateRangeBound(loop.Low, "lower")
	if err != nil {
		return err
	}
	high, err := i.evaluateRangeBound(loop.High, "upper")
	if err != nil {
		return err
	}

	i.scopes.Open(loop)
	err = i.runForLoop(loop, low, high)
	if closeErr := i.scopes.Close(loop); closeErr != nil && err == nil {
		err = locate(loop, closeErr)
	}
	return err
}

func (i *Interpreter) runForLoop(loop *ast.For, low, high int64) error {
	for v := low; v <= high; v++ {
		i.scopes.Bind(loop.Variable, runtime.NewCell(runtime.IntegerValue{Val: v}))
		if err := i.evaluateBlock(loop.Body); err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
			default:
				return err
			}
		}
		if v == math.MaxInt64 {
			break
		}
	}
	return nil
}

func (i *Interpreter) evaluateWhileLoop(loop *ast.While) error {
	for {
		cond, err := i.evaluateCondition(loop.Condition, "while")
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := i.evaluateBlock(loop.Body); err != nil {
			switch err.(type) {
			case breakSignal:
				return nil
			case continueSignal:
				continue
			default:
				return err
			}
		}
	}
}

func (i *Interpreter) evaluatePrint(stmt *ast.Print) error {
	for _, arg := range stmt.Arguments {
		cell, err := i.evaluateExpression(arg)
		if err != nil {
			return err
		}
		if i.out == nil {
			continue
		}
		if _, err := i.out.WriteString(renderValue(cell.Get())); err != nil {
			return newRuntimeError(stmt, Internal, "write output: %v", err)
		}
	}
	return nil
}

func (i *Interpreter) evaluateReturn(stmt *ast.Return) error {
	if stmt.Value == nil {
		return returnSignal{value: runtime.NewCell(runtime.EmptyValue{})}
	}
	cell, err := i.evaluateExpression(stmt.Value)
	if err != nil {
		return err
	}
	return returnSignal{value: cell}
}
