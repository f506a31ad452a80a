package checker

import "dscript/interpreter-go/pkg/ast"

func (c *Checker) checkExpression(expr *ast.Expression) {
	if expr == nil {
		return
	}
	for _, operand := range expr.Operands {
		if operand != nil {
			c.checkPrimary(operand.Primary)
		}
	}
}

func (c *Checker) checkPrimary(p *ast.Primary) {
	if p == nil {
		return
	}
	switch p.Kind {
	case ast.PrimaryVariable:
		if !c.visible(p.Name) {
			c.report(SeverityError, CodeUndefined, p, "undefined variable '%s'", p.Name)
		}
	case ast.PrimaryParenthesized:
		c.checkExpression(p.Inner)
	case ast.PrimaryLiteral:
		c.checkLiteral(p.Literal)
	}
	for _, tail := range p.Tails {
		if tail == nil {
			continue
		}
		switch tail.Kind {
		case ast.TailSubscript:
			c.checkExpression(tail.Subscript)
		case ast.TailCall:
			for _, arg := range tail.Arguments {
				c.checkExpression(arg)
			}
		}
	}
}

func (c *Checker) checkLiteral(lit ast.Literal) {
	switch l := lit.(type) {
	case *ast.ArrayLiteral:
		for _, elem := range l.Elements {
			c.checkExpression(elem)
		}
	case *ast.TupleLiteral:
		seen := make(map[string]bool, len(l.Elements))
		for _, elem := range l.Elements {
			if elem == nil {
				continue
			}
			c.checkExpression(elem.Value)
			if elem.Name == "" {
				continue
			}
			if seen[elem.Name] {
				c.report(SeverityError, CodeDuplicateKey, elem, "duplicate tuple key '%s'", elem.Name)
			}
			seen[elem.Name] = true
		}
	case *ast.FunctionLiteral:
		c.checkFunction(l, "")
	}
}
