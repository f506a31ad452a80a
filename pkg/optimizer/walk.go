package optimizer

import "dscript/interpreter-go/pkg/ast"

// walker visits every body and expression of a program, including the ones
// inside function literals. Expressions are visited after their nested
// expressions, bodies after their nested bodies.
type walker struct {
	body  func(*ast.Body) bool
	expr  func(*ast.Expression) bool
	paren func(*ast.Primary) bool
}

func (w walker) program(p *ast.Program) bool {
	if p == nil {
		return false
	}
	return w.visitBody(p.Body)
}

func (w walker) visitBody(b *ast.Body) bool {
	if b == nil {
		return false
	}
	changed := false
	for _, stmt := range b.Statements {
		if w.visitStatement(stmt) {
			changed = true
		}
	}
	if w.body != nil && w.body(b) {
		changed = true
	}
	return changed
}

func (w walker) visitStatement(stmt ast.Statement) bool {
	changed := false
	mark := func(c bool) {
		if c {
			changed = true
		}
	}
	switch s := stmt.(type) {
	case *ast.Declaration:
		mark(w.visitExpression(s.Initializer))
	case *ast.Assignment:
		mark(w.visitPrimary(s.Target))
		mark(w.visitExpression(s.Value))
	case *ast.If:
		mark(w.visitExpression(s.Condition))
		mark(w.visitBody(s.Then))
		mark(w.visitBody(s.Else))
	case *ast.For:
		mark(w.visitExpression(s.Low))
		mark(w.visitExpression(s.High))
		mark(w.visitBody(s.Body))
	case *ast.While:
		mark(w.visitExpression(s.Condition))
		mark(w.visitBody(s.Body))
	case *ast.Print:
		for _, arg := range s.Arguments {
			mark(w.visitExpression(arg))
		}
	case *ast.Return:
		mark(w.visitExpression(s.Value))
	case *ast.Body:
		mark(w.visitBody(s))
	}
	return changed
}

func (w walker) visitExpression(e *ast.Expression) bool {
	if e == nil {
		return false
	}
	changed := false
	for _, operand := range e.Operands {
		if operand != nil && w.visitPrimary(operand.Primary) {
			changed = true
		}
	}
	if w.expr != nil && w.expr(e) {
		changed = true
	}
	return changed
}

func (w walker) visitPrimary(p *ast.Primary) bool {
	if p == nil {
		return false
	}
	changed := false
	switch p.Kind {
	case ast.PrimaryParenthesized:
		changed = w.visitExpression(p.Inner)
		if w.paren != nil && w.paren(p) {
			changed = true
		}
	case ast.PrimaryLiteral:
		changed = w.visitLiteral(p.Literal)
	}
	for _, tail := range p.Tails {
		if tail == nil {
			continue
		}
		if w.visitExpression(tail.Subscript) {
			changed = true
		}
		for _, arg := range tail.Arguments {
			if w.visitExpression(arg) {
				changed = true
			}
		}
	}
	return changed
}

func (w walker) visitLiteral(lit ast.Literal) bool {
	changed := false
	switch l := lit.(type) {
	case *ast.ArrayLiteral:
		for _, el := range l.Elements {
			if w.visitExpression(el) {
				changed = true
			}
		}
	case *ast.TupleLiteral:
		for _, el := range l.Elements {
			if el != nil && w.visitExpression(el.Value) {
				changed = true
			}
		}
	case *ast.FunctionLiteral:
		if w.visitBody(l.Body) {
			changed = true
		}
		if w.visitExpression(l.ExprBody) {
			changed = true
		}
	}
	return changed
}

// collapseParenthesized turns `(literal)` into the literal itself once the
// inner expression has been folded. Only scalar literals are unwrapped.
func collapseParenthesized(p *ast.Primary) bool {
	if p.Kind != ast.PrimaryParenthesized || p.Inner == nil {
		return false
	}
	lit := plainLiteral(p.Inner)
	if lit == nil || !isScalarLiteral(lit) {
		return false
	}
	p.Kind = ast.PrimaryLiteral
	p.Literal = lit
	p.Inner = nil
	return true
}

// plainLiteral returns the literal of an expression that is nothing but one
// literal operand.
func plainLiteral(e *ast.Expression) ast.Literal {
	if e == nil || len(e.Operands) != 1 || len(e.Operators) != 0 {
		return nil
	}
	u := e.Operands[0]
	if u == nil || u.Operator != ast.UnaryNone || u.TypeTest != "" {
		return nil
	}
	p := u.Primary
	if p == nil || p.Kind != ast.PrimaryLiteral || len(p.Tails) != 0 {
		return nil
	}
	return p.Literal
}

func isScalarLiteral(lit ast.Literal) bool {
	switch lit.(type) {
	case *ast.IntegerLiteral, *ast.RealLiteral, *ast.BooleanLiteral, *ast.StringLiteral, *ast.EmptyLiteral:
		return true
	}
	return false
}
