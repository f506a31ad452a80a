package parser

import (
	"strconv"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/lexer"
)

func (p *ProgramParser) parseLiteral() (ast.Literal, error) {
	tok := p.peek()
	var (
		lit ast.Literal
		err error
	)
	switch tok.Type {
	case lexer.TokIntLit:
		p.advance()
		value, perr := strconv.ParseInt(tok.Value, 10, 64)
		if perr != nil {
			return nil, p.errorAt(tok.Span, "integer literal out of range: "+tok.Value)
		}
		lit = ast.NewIntegerLiteral(value)
	case lexer.TokRealLit:
		p.advance()
		value, perr := strconv.ParseFloat(tok.Value, 64)
		if perr != nil {
			return nil, p.errorAt(tok.Span, "invalid real literal: "+tok.Value)
		}
		lit = ast.NewRealLiteral(value)
	case lexer.TokStringLit:
		p.advance()
		lit = ast.NewStringLiteral(tok.Value)
	case lexer.TokTrue, lexer.TokFalse:
		p.advance()
		lit = ast.NewBooleanLiteral(tok.Type == lexer.TokTrue)
	case lexer.TokEmpty:
		p.advance()
		lit = ast.NewEmptyLiteral()
	case lexer.TokLBracket:
		lit, err = p.parseArrayLiteral()
	case lexer.TokLBrace:
		lit, err = p.parseTupleLiteral()
	case lexer.TokFunc:
		lit, err = p.parseFunctionLiteral()
	default:
		return nil, p.unexpected("expected expression")
	}
	if err != nil {
		return nil, err
	}
	annotateRange(lit, tok.Span, p.prevSpan())
	return lit, nil
}

func (p *ProgramParser) parseArrayLiteral() (ast.Literal, error) {
	p.advance() // [
	var elements []*ast.Expression
	if !p.check(lexer.TokRBracket) {
		var err error
		elements, err = p.parseExpressionList()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.TokRBracket, "to close array literal"); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteral(elements), nil
}

func (p *ProgramParser) parseTupleLiteral() (ast.Literal, error) {
	p.advance() // {
	var elements []*ast.TupleElement
	for !p.check(lexer.TokRBrace) {
		start := p.peek().Span
		name := ""
		if p.check(lexer.TokIdent) && p.peekAt(1).Type == lexer.TokAssign {
			name = p.advance().Value
			p.advance()
		}
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		element := ast.NewTupleElement(name, value)
		annotateRange(element, start, p.prevSpan())
		elements = append(elements, element)
		if !p.match(lexer.TokComma) {
			break
		}
	}
	if _, err := p.expect(lexer.TokRBrace, "to close tuple literal"); err != nil {
		return nil, err
	}
	return ast.NewTupleLiteral(elements), nil
}

func (p *ProgramParser) parseFunctionLiteral() (ast.Literal, error) {
	p.advance() // func
	var params []string
	if p.match(lexer.TokLParen) {
		for !p.check(lexer.TokRParen) {
			tok, err := p.expect(lexer.TokIdent, "in parameter list")
			if err != nil {
				return nil, err
			}
			params = append(params, tok.Value)
			if !p.match(lexer.TokComma) {
				break
			}
		}
		if _, err := p.expect(lexer.TokRParen, "to close parameter list"); err != nil {
			return nil, err
		}
	}
	switch {
	case p.match(lexer.TokIs):
		body, err := p.parseBody(lexer.TokEnd)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokEnd, "to close function body"); err != nil {
			return nil, err
		}
		return ast.NewFunctionLiteral(params, body, nil), nil
	case p.match(lexer.TokArrow):
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewFunctionLiteral(params, nil, expr), nil
	}
	return nil, p.unexpected("expected 'is' or '=>' after function parameters")
}
