package checker

import "dscript/interpreter-go/pkg/ast"

func (c *Checker) checkStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Declaration:
		c.checkDeclaration(s)
	case *ast.Assignment:
		c.checkPrimary(s.Target)
		c.checkExpression(s.Value)
	case *ast.If:
		c.checkExpression(s.Condition)
		c.checkBlock(s.Then)
		c.checkBlock(s.Else)
	case *ast.For:
		c.checkExpression(s.Low)
		c.checkExpression(s.High)
		c.push()
		c.declare(s.Variable)
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
		c.pop()
	case *ast.While:
		c.checkExpression(s.Condition)
		c.loopDepth++
		c.checkBlock(s.Body)
		c.loopDepth--
	case *ast.Print:
		for _, arg := range s.Arguments {
			c.checkExpression(arg)
		}
	case *ast.Return:
		if c.funcDepth == 0 {
			c.report(SeverityWarning, CodeTopLevelReturn, s, "return outside a function ends the program")
		}
		c.checkExpression(s.Value)
	case *ast.Break:
		if c.loopDepth == 0 {
			c.report(SeverityError, CodeBreakOutsideLoop, s, "break outside of a loop")
		}
	case *ast.Continue:
		if c.loopDepth == 0 {
			c.report(SeverityError, CodeContinueOutsideLoop, s, "continue outside of a loop")
		}
	case *ast.Body:
		c.checkBlock(s)
	}
}

func (c *Checker) checkBlock(body *ast.Body) {
	if body == nil {
		return
	}
	c.push()
	for _, stmt := range body.Statements {
		c.checkStatement(stmt)
	}
	c.pop()
}

// The initializer is checked before the name is bound, matching run time:
// `var x := x` reads an outer x.
func (c *Checker) checkDeclaration(decl *ast.Declaration) {
	if fn := directFunctionLiteral(decl.Initializer); fn != nil {
		c.checkFunction(fn, decl.Name)
	} else {
		c.checkExpression(decl.Initializer)
	}
	if !c.declare(decl.Name) {
		c.report(SeverityError, CodeRedeclared, decl, "'%s' is already declared in this scope", decl.Name)
	}
}

func directFunctionLiteral(expr *ast.Expression) *ast.FunctionLiteral {
	if expr == nil || len(expr.Operands) != 1 {
		return nil
	}
	u := expr.Operands[0]
	if u == nil || u.Operator != ast.UnaryNone || u.TypeTest != "" || u.Primary == nil || u.Primary.Kind != ast.PrimaryLiteral {
		return nil
	}
	fn, _ := u.Primary.Literal.(*ast.FunctionLiteral)
	return fn
}

// checkFunction opens the call frame: parameters and body statements share
// it, and break/continue cannot reach loops outside the function.
func (c *Checker) checkFunction(fn *ast.FunctionLiteral, self string) {
	if fn == nil {
		return
	}
	savedLoops := c.loopDepth
	c.loopDepth = 0
	c.funcDepth++
	if self != "" {
		c.push()
		c.declare(self)
		defer c.pop()
	}
	c.push()
	for _, param := range fn.Params {
		if !c.declare(param) {
			c.report(SeverityError, CodeDuplicateParam, fn, "duplicate parameter '%s'", param)
		}
	}
	if fn.IsLambda() {
		c.checkExpression(fn.ExprBody)
	} else if fn.Body != nil {
		for _, stmt := range fn.Body.Statements {
			c.checkStatement(stmt)
		}
	}
	c.pop()
	c.funcDepth--
	c.loopDepth = savedLoops
}
