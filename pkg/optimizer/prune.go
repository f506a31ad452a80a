package optimizer

import "dscript/interpreter-go/pkg/ast"

// pruneUnreachable drops the statements that follow a return, break or
// continue in the same body.
func (o *Optimizer) pruneUnreachable(program *ast.Program) bool {
	w := walker{
		body: func(b *ast.Body) bool {
			for idx, stmt := range b.Statements {
				switch stmt.(type) {
				case *ast.Return, *ast.Break, *ast.Continue:
					if idx+1 < len(b.Statements) {
						b.Statements = b.Statements[:idx+1]
						return true
					}
					return false
				}
			}
			return false
		},
	}
	return w.program(program)
}
