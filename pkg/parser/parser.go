// Package parser turns dscript source into the canonical syntax tree.
package parser

import (
	"errors"
	"fmt"

	"dscript/interpreter-go/pkg/ast"
	"dscript/interpreter-go/pkg/lexer"
)

// Error reports a syntax error. Incomplete is set when the input ended
// before the construct being parsed was finished.
type Error struct {
	Path       string
	Span       ast.Span
	Message    string
	Incomplete bool
}

func (e *Error) Error() string {
	loc := fmt.Sprintf("%d:%d", e.Span.Start.Line, e.Span.Start.Column)
	if e.Path != "" {
		loc = e.Path + ":" + loc
	}
	return fmt.Sprintf("%s: %s", loc, e.Message)
}

// IsIncomplete reports whether err was caused by premature end of input.
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}

// ProgramParser walks a token stream produced by the lexer.
type ProgramParser struct {
	path   string
	tokens []lexer.Token
	pos    int
}

// NewProgramParser tokenizes source and prepares a parser over it.
func NewProgramParser(path string, source string) (*ProgramParser, error) {
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		var lexErr *lexer.Error
		if errors.As(err, &lexErr) {
			return nil, &Error{Path: path, Span: lexErr.Span, Message: lexErr.Message}
		}
		return nil, fmt.Errorf("parser: %w", err)
	}
	return &ProgramParser{path: path, tokens: tokens}, nil
}

// ParseSource lexes and parses a complete program.
func ParseSource(path string, source string) (*ast.Program, error) {
	p, err := NewProgramParser(path, source)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseProgram consumes the whole token stream.
func (p *ProgramParser) ParseProgram() (*ast.Program, error) {
	start := p.peek().Span
	statements, err := p.parseStatements(lexer.TokEOF)
	if err != nil {
		return nil, err
	}
	body := ast.NewBody(statements)
	annotateRange(body, start, p.prevSpan())
	program := ast.NewProgram(body)
	annotateRange(program, start, p.prevSpan())
	return program, nil
}

func (p *ProgramParser) peek() lexer.Token {
	return p.peekAt(0)
}

func (p *ProgramParser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *ProgramParser) check(typ lexer.TokenType) bool {
	return p.peek().Type == typ
}

func (p *ProgramParser) advance() lexer.Token {
	tok := p.peek()
	if tok.Type != lexer.TokEOF {
		p.pos++
	}
	return tok
}

func (p *ProgramParser) match(types ...lexer.TokenType) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *ProgramParser) expect(typ lexer.TokenType, context string) (lexer.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.unexpected(fmt.Sprintf("expected %s %s", typ, context))
}

// prevSpan is the span of the last consumed token.
func (p *ProgramParser) prevSpan() ast.Span {
	if p.pos == 0 {
		return p.peek().Span
	}
	return p.tokens[p.pos-1].Span
}

func (p *ProgramParser) unexpected(message string) error {
	tok := p.peek()
	if tok.Type == lexer.TokEOF {
		return &Error{Path: p.path, Span: tok.Span, Message: message + ", found end of input", Incomplete: true}
	}
	return &Error{Path: p.path, Span: tok.Span, Message: fmt.Sprintf("%s, found %q", message, tok.Value)}
}

func (p *ProgramParser) errorAt(span ast.Span, message string) error {
	return &Error{Path: p.path, Span: span, Message: message}
}
