package optimizer

import "dscript/interpreter-go/pkg/ast"

// eliminateDeadBranches replaces `if` statements with a literal boolean
// condition by the branch that would run, and drops `while false` loops.
// A taken branch stays a nested body so its declarations keep their scope.
func (o *Optimizer) eliminateDeadBranches(program *ast.Program) bool {
	w := walker{
		body: func(b *ast.Body) bool {
			changed := false
			kept := make([]ast.Statement, 0, len(b.Statements))
			for _, stmt := range b.Statements {
				switch s := stmt.(type) {
				case *ast.If:
					cond, ok := literalCondition(s.Condition)
					if !ok {
						break
					}
					changed = true
					taken := s.Else
					if cond {
						taken = s.Then
					}
					if taken != nil && len(taken.Statements) > 0 {
						kept = append(kept, taken)
					}
					continue
				case *ast.While:
					if cond, ok := literalCondition(s.Condition); ok && !cond {
						changed = true
						continue
					}
				}
				kept = append(kept, stmt)
			}
			if changed {
				b.Statements = kept
			}
			return changed
		},
	}
	return w.program(program)
}

func literalCondition(e *ast.Expression) (bool, bool) {
	lit, ok := plainLiteral(e).(*ast.BooleanLiteral)
	if !ok || lit == nil {
		return false, false
	}
	return lit.Value, true
}
