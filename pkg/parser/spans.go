package parser

import (
	"dscript/interpreter-go/pkg/ast"
)

func annotateRange(node ast.Node, start, end ast.Span) {
	if node == nil {
		return
	}
	ast.SetSpan(node, ast.Span{Start: start.Start, End: end.End})
}

func annotateStatement(stmt ast.Statement, start, end ast.Span) ast.Statement {
	annotateRange(stmt, start, end)
	return stmt
}

func annotateExpression(expr *ast.Expression, start, end ast.Span) *ast.Expression {
	annotateRange(expr, start, end)
	return expr
}
