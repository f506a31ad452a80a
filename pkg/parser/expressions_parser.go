package parser

import (
	"strconv"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/lexer"
)

var binaryOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokStar:  ast.OpMultiply,
	lexer.TokSlash: ast.OpDivide,
	lexer.TokPlus:  ast.OpAdd,
	lexer.TokMinus: ast.OpSubtract,
	lexer.TokLt:    ast.OpLess,
	lexer.TokLtEq:  ast.OpLessEqual,
	lexer.TokGt:    ast.OpGreater,
	lexer.TokGtEq:  ast.OpGreaterEqual,
	lexer.TokEq:    ast.OpEqual,
	lexer.TokNotEq: ast.OpNotEqual,
	lexer.TokAnd:   ast.OpAnd,
	lexer.TokOr:    ast.OpOr,
	lexer.TokXor:   ast.OpXor,
}

var typeIndicators = map[lexer.TokenType]ast.TypeIndicator{
	lexer.TokInt:    ast.TypeInt,
	lexer.TokReal:   ast.TypeReal,
	lexer.TokBool:   ast.TypeBool,
	lexer.TokString: ast.TypeString,
	lexer.TokEmpty:  ast.TypeEmpty,
	lexer.TokFunc:   ast.TypeFunc,
}

// parseExpression keeps the operand/operator sequence flat; precedence is
// resolved when the expression is evaluated.
func (p *ProgramParser) parseExpression() (*ast.Expression, error) {
	start := p.peek().Span
	first, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	operands := []*ast.Unary{first}
	var operators []ast.BinaryOperator
	for {
		op, ok := binaryOperators[p.peek().Type]
		if !ok {
			break
		}
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		operators = append(operators, op)
		operands = append(operands, operand)
	}
	return annotateExpression(ast.NewExpression(operands, operators), start, p.prevSpan()), nil
}

func (p *ProgramParser) parseExpressionList() ([]*ast.Expression, error) {
	var exprs []*ast.Expression
	for {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
		if !p.match(lexer.TokComma) {
			return exprs, nil
		}
	}
}

func (p *ProgramParser) parseUnary() (*ast.Unary, error) {
	start := p.peek().Span
	op := ast.UnaryNone
	switch {
	case p.match(lexer.TokPlus):
		op = ast.UnaryPlus
	case p.match(lexer.TokMinus):
		op = ast.UnaryMinus
	case p.match(lexer.TokNot):
		op = ast.UnaryNot
	}
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	var typeTest ast.TypeIndicator
	if p.match(lexer.TokIs) {
		typeTest, err = p.parseTypeIndicator()
		if err != nil {
			return nil, err
		}
	}
	unary := ast.NewUnary(op, primary, typeTest)
	annotateRange(unary, start, p.prevSpan())
	return unary, nil
}

func (p *ProgramParser) parseTypeIndicator() (ast.TypeIndicator, error) {
	if kind, ok := typeIndicators[p.peek().Type]; ok {
		p.advance()
		return kind, nil
	}
	switch {
	case p.check(lexer.TokLBracket) && p.peekAt(1).Type == lexer.TokRBracket:
		p.advance()
		p.advance()
		return ast.TypeArray, nil
	case p.check(lexer.TokLBrace) && p.peekAt(1).Type == lexer.TokRBrace:
		p.advance()
		p.advance()
		return ast.TypeTuple, nil
	}
	return "", p.unexpected("expected type indicator after 'is'")
}

func (p *ProgramParser) parsePrimary() (*ast.Primary, error) {
	tok := p.peek()
	switch tok.Type {
	case lexer.TokReadInt:
		return p.parseRead(ast.PrimaryReadInt)
	case lexer.TokReadReal:
		return p.parseRead(ast.PrimaryReadReal)
	case lexer.TokReadString:
		return p.parseRead(ast.PrimaryReadString)
	case lexer.TokIdent:
		return p.parseVariable()
	case lexer.TokLParen:
		p.advance()
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRParen, "to close parenthesised expression"); err != nil {
			return nil, err
		}
		primary := ast.NewParenthesizedPrimary(inner)
		annotateRange(primary, tok.Span, p.prevSpan())
		return primary, nil
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	primary := ast.NewLiteralPrimary(lit)
	annotateRange(primary, tok.Span, p.prevSpan())
	return primary, nil
}

func (p *ProgramParser) parseRead(kind ast.PrimaryKind) (*ast.Primary, error) {
	tok := p.advance()
	primary := ast.NewReadPrimary(kind)
	annotateRange(primary, tok.Span, tok.Span)
	return primary, nil
}

// parseVariable parses an identifier followed by its tails.
func (p *ProgramParser) parseVariable() (*ast.Primary, error) {
	nameTok, err := p.expect(lexer.TokIdent, "in expression")
	if err != nil {
		return nil, err
	}
	var tails []*ast.Tail
	for {
		tail, err := p.parseTail()
		if err != nil {
			return nil, err
		}
		if tail == nil {
			break
		}
		tails = append(tails, tail)
	}
	primary := ast.NewVariablePrimary(nameTok.Value, tails)
	annotateRange(primary, nameTok.Span, p.prevSpan())
	return primary, nil
}

// parseTail returns nil when the next token does not begin a tail.
func (p *ProgramParser) parseTail() (*ast.Tail, error) {
	start := p.peek().Span
	var tail *ast.Tail
	switch {
	case p.match(lexer.TokDot):
		switch tok := p.peek(); tok.Type {
		case lexer.TokIntLit:
			p.advance()
			index, err := strconv.ParseInt(tok.Value, 10, 64)
			if err != nil {
				return nil, p.errorAt(tok.Span, "tuple index out of range")
			}
			tail = ast.NewTupleIndexTail(index)
		case lexer.TokIdent:
			p.advance()
			tail = ast.NewTupleNameTail(tok.Value)
		default:
			return nil, p.unexpected("expected tuple index or field name after '.'")
		}
	case p.match(lexer.TokLBracket):
		subscript, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.TokRBracket, "to close subscript"); err != nil {
			return nil, err
		}
		tail = ast.NewSubscriptTail(subscript)
	case p.match(lexer.TokLParen):
		var args []*ast.Expression
		if !p.check(lexer.TokRParen) {
			var err error
			args, err = p.parseExpressionList()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(lexer.TokRParen, "to close argument list"); err != nil {
			return nil, err
		}
		tail = ast.NewCallTail(args)
	default:
		return nil, nil
	}
	annotateRange(tail, start, p.prevSpan())
	return tail, nil
}
