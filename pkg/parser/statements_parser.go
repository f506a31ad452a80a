package parser

import (
	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/lexer"
)

// parseStatements collects statements until one of the terminators is next.
// The terminator itself is left in the stream.
func (p *ProgramParser) parseStatements(terminators ...lexer.TokenType) ([]ast.Statement, error) {
	var statements []ast.Statement
	for {
		if p.match(lexer.TokSemicolon) {
			continue
		}
		next := p.peek().Type
		for _, term := range terminators {
			if next == term {
				return statements, nil
			}
		}
		if next == lexer.TokEOF {
			return nil, p.unexpected("expected 'end'")
		}
		parsed, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, parsed...)
	}
}

// parseBody parses statements into a Body that ends before a terminator.
func (p *ProgramParser) parseBody(terminators ...lexer.TokenType) (*ast.Body, error) {
	start := p.peek().Span
	statements, err := p.parseStatements(terminators...)
	if err != nil {
		return nil, err
	}
	body := ast.NewBody(statements)
	if len(statements) > 0 {
		annotateRange(body, start, p.prevSpan())
	} else {
		annotateRange(body, start, start)
	}
	return body, nil
}

// parseStatement returns a slice because `var a, b` declares several names.
func (p *ProgramParser) parseStatement() ([]ast.Statement, error) {
	tok := p.peek()
	var (
		stmt ast.Statement
		err  error
	)
	switch tok.Type {
	case lexer.TokVar:
		return p.parseDeclarations()
	case lexer.TokIf:
		stmt, err = p.parseIf()
	case lexer.TokFor:
		stmt, err = p.parseFor()
	case lexer.TokWhile:
		stmt, err = p.parseWhile()
	case lexer.TokPrint:
		stmt, err = p.parsePrint()
	case lexer.TokReturn:
		stmt, err = p.parseReturn()
	case lexer.TokBreak:
		p.advance()
		stmt = annotateStatement(ast.NewBreak(), tok.Span, tok.Span)
	case lexer.TokContinue:
		p.advance()
		stmt = annotateStatement(ast.NewContinue(), tok.Span, tok.Span)
	case lexer.TokIdent:
		stmt, err = p.parseAssignment()
	default:
		return nil, p.unexpected("expected statement")
	}
	if err != nil {
		return nil, err
	}
	return []ast.Statement{stmt}, nil
}

func (p *ProgramParser) parseDeclarations() ([]ast.Statement, error) {
	p.advance() // var
	var decls []ast.Statement
	for {
		nameTok, err := p.expect(lexer.TokIdent, "after 'var'")
		if err != nil {
			return nil, err
		}
		var init *ast.Expression
		if p.match(lexer.TokAssign) {
			init, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		decl := ast.NewDeclaration(nameTok.Value, init)
		decls = append(decls, annotateStatement(decl, nameTok.Span, p.prevSpan()))
		if !(p.check(lexer.TokComma) && p.peekAt(1).Type == lexer.TokIdent) {
			return decls, nil
		}
		p.advance()
	}
}

func (p *ProgramParser) parseAssignment() (ast.Statement, error) {
	start := p.peek().Span
	target, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	var op ast.AssignmentOperator
	switch {
	case p.match(lexer.TokAssign):
		op = ast.AssignSet
	case p.match(lexer.TokPlusAssign):
		op = ast.AssignAdd
	case p.match(lexer.TokMinusAssign):
		op = ast.AssignSubtract
	}

	if op == ast.AssignNone {
		if len(target.Tails) == 0 || target.Tails[len(target.Tails)-1].Kind != ast.TailCall {
			return nil, p.unexpected("expected ':=', '+=', '-=' or a call")
		}
		return annotateStatement(ast.NewAssignment(target, op, nil), start, p.prevSpan()), nil
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewAssignment(target, op, value), start, p.prevSpan()), nil
}

func (p *ProgramParser) parseIf() (ast.Statement, error) {
	start := p.advance().Span
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokThen, "after if condition"); err != nil {
		return nil, err
	}
	then, err := p.parseBody(lexer.TokElse, lexer.TokEnd)
	if err != nil {
		return nil, err
	}
	var elseBody *ast.Body
	if p.match(lexer.TokElse) {
		elseBody, err = p.parseBody(lexer.TokEnd)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokEnd, "to close if"); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewIf(cond, then, elseBody), start, p.prevSpan()), nil
}

func (p *ProgramParser) parseFor() (ast.Statement, error) {
	start := p.advance().Span
	nameTok, err := p.expect(lexer.TokIdent, "after 'for'")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokIn, "after loop variable"); err != nil {
		return nil, err
	}
	low, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokDotDot, "in range"); err != nil {
		return nil, err
	}
	high, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLoop, "after range"); err != nil {
		return nil, err
	}
	body, err := p.parseBody(lexer.TokEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokEnd, "to close for"); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewFor(nameTok.Value, low, high, body), start, p.prevSpan()), nil
}

func (p *ProgramParser) parseWhile() (ast.Statement, error) {
	start := p.advance().Span
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokLoop, "after while condition"); err != nil {
		return nil, err
	}
	body, err := p.parseBody(lexer.TokEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokEnd, "to close while"); err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewWhile(cond, body), start, p.prevSpan()), nil
}

func (p *ProgramParser) parsePrint() (ast.Statement, error) {
	start := p.advance().Span
	args, err := p.parseExpressionList()
	if err != nil {
		return nil, err
	}
	return annotateStatement(ast.NewPrint(args), start, p.prevSpan()), nil
}

func (p *ProgramParser) parseReturn() (ast.Statement, error) {
	start := p.advance().Span
	var value *ast.Expression
	if p.startsExpression() {
		var err error
		value, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return annotateStatement(ast.NewReturn(value), start, p.prevSpan()), nil
}

func (p *ProgramParser) startsExpression() bool {
	switch p.peek().Type {
	case lexer.TokPlus, lexer.TokMinus, lexer.TokNot,
		lexer.TokReadInt, lexer.TokReadReal, lexer.TokReadString,
		lexer.TokIdent, lexer.TokIntLit, lexer.TokRealLit, lexer.TokStringLit,
		lexer.TokTrue, lexer.TokFalse, lexer.TokEmpty,
		lexer.TokLBracket, lexer.TokLBrace, lexer.TokFunc, lexer.TokLParen:
		return true
	}
	return false
}
