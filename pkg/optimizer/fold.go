package optimizer

import (
	"math"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/interpreter"
	"dscript/interpreter-go/pkg/runtime"
)

// foldConstants evaluates literal-only expressions with the interpreter
// itself, so folded results always agree with run time. Expressions that
// fail to evaluate stay in place and fail when the program runs.
func (o *Optimizer) foldConstants(program *ast.Program) bool {
	eval := interpreter.New(interpreter.WithAssociativity(o.associativity))
	w := walker{
		expr: func(e *ast.Expression) bool {
			if !foldable(e) {
				return false
			}
			value, err := eval.EvaluateExpression(e)
			if err != nil {
				o.logger.Debug().Err(err).Str("span", e.Span().String()).Msg("constant folding skipped")
				return false
			}
			lit := literalFor(value)
			if lit == nil {
				return false
			}
			ast.SetSpan(lit, e.Span())
			primary := ast.Lit(lit)
			ast.SetSpan(primary, e.Span())
			unary := ast.U(primary)
			ast.SetSpan(unary, e.Span())
			e.Operands = []*ast.Unary{unary}
			e.Operators = nil
			return true
		},
		paren: collapseParenthesized,
	}
	return w.program(program)
}

// foldable reports whether e consists only of scalar literal operands and
// has something left to compute.
func foldable(e *ast.Expression) bool {
	if e == nil || len(e.Operands) == 0 {
		return false
	}
	work := len(e.Operators) > 0
	for _, u := range e.Operands {
		if u == nil || u.Primary == nil {
			return false
		}
		p := u.Primary
		if p.Kind != ast.PrimaryLiteral || len(p.Tails) != 0 || !isScalarLiteral(p.Literal) {
			return false
		}
		if u.Operator != ast.UnaryNone || u.TypeTest != "" {
			work = true
		}
	}
	return work
}

func literalFor(value runtime.Value) ast.Literal {
	switch v := value.(type) {
	case runtime.IntegerValue:
		return ast.Int(v.Val)
	case runtime.RealValue:
		// no literal spells inf or nan
		if math.IsInf(v.Val, 0) || math.IsNaN(v.Val) {
			return nil
		}
		return ast.Real(v.Val)
	case runtime.BoolValue:
		return ast.Bool(v.Val)
	case runtime.StringValue:
		return ast.Str(v.Val)
	case runtime.EmptyValue:
		return ast.Empty()
	}
	return nil
}
