// Package lexer implements the dscript tokenizer.
package lexer

import (
	"fmt"

	"dscript/interpreter-go/pkg/ast"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Keywords
	TokVar TokenType = iota
	TokIf
	TokThen
	TokElse
	TokEnd
	TokFor
	TokIn
	TokLoop
	TokWhile
	TokPrint
	TokReturn
	TokBreak
	TokContinue
	TokFunc
	TokIs
	TokAnd
	TokOr
	TokXor
	TokNot
	TokTrue
	TokFalse
	TokEmpty
	TokReadInt
	TokReadReal
	TokReadString
	TokInt
	TokReal
	TokBool
	TokString

	// Literals
	TokIntLit
	TokRealLit
	TokStringLit

	// Identifiers
	TokIdent

	// Punctuation
	TokAssign     // :=
	TokPlusAssign // +=
	TokMinusAssign
	TokPlus
	TokMinus
	TokStar
	TokSlash
	TokLt
	TokLtEq
	TokGt
	TokGtEq
	TokEq    // =
	TokNotEq // /=
	TokArrow // =>
	TokLParen
	TokRParen
	TokLBracket
	TokRBracket
	TokLBrace
	TokRBrace
	TokComma
	TokDot
	TokDotDot
	TokSemicolon

	// Special
	TokEOF
)

var tokenNames = map[TokenType]string{
	TokIntLit:      "integer literal",
	TokRealLit:     "real literal",
	TokStringLit:   "string literal",
	TokIdent:       "identifier",
	TokAssign:      "':='",
	TokPlusAssign:  "'+='",
	TokMinusAssign: "'-='",
	TokPlus:        "'+'",
	TokMinus:       "'-'",
	TokStar:        "'*'",
	TokSlash:       "'/'",
	TokLt:          "'<'",
	TokLtEq:        "'<='",
	TokGt:          "'>'",
	TokGtEq:        "'>='",
	TokEq:          "'='",
	TokNotEq:       "'/='",
	TokArrow:       "'=>'",
	TokLParen:      "'('",
	TokRParen:      "')'",
	TokLBracket:    "'['",
	TokRBracket:    "']'",
	TokLBrace:      "'{'",
	TokRBrace:      "'}'",
	TokComma:       "','",
	TokDot:         "'.'",
	TokDotDot:      "'..'",
	TokSemicolon:   "';'",
	TokEOF:         "end of input",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	for word, typ := range keywords {
		if typ == t {
			return "'" + word + "'"
		}
	}
	return fmt.Sprintf("token(%d)", int(t))
}

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  ast.Span
}

var keywords = map[string]TokenType{
	"var":        TokVar,
	"if":         TokIf,
	"then":       TokThen,
	"else":       TokElse,
	"end":        TokEnd,
	"for":        TokFor,
	"in":         TokIn,
	"loop":       TokLoop,
	"while":      TokWhile,
	"print":      TokPrint,
	"return":     TokReturn,
	"break":      TokBreak,
	"continue":   TokContinue,
	"func":       TokFunc,
	"is":         TokIs,
	"and":        TokAnd,
	"or":         TokOr,
	"xor":        TokXor,
	"not":        TokNot,
	"true":       TokTrue,
	"false":      TokFalse,
	"empty":      TokEmpty,
	"readInt":    TokReadInt,
	"readReal":   TokReadReal,
	"readString": TokReadString,
	"int":        TokInt,
	"real":       TokReal,
	"bool":       TokBool,
	"string":     TokString,
}

// IsKeyword reports whether word is reserved.
func IsKeyword(word string) bool {
	_, ok := keywords[word]
	return ok
}

// Error is a lexical error with the position of the offending character.
type Error struct {
	Span    ast.Span
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

type scanner struct {
	source string
	pos    int
	line   int
	col    int
	prev   TokenType
}

func newScanner(source string) *scanner {
	return &scanner{source: source, line: 1, col: 1, prev: TokEOF}
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.source)
}

func (s *scanner) peek() byte {
	return s.peekAt(0)
}

func (s *scanner) peekAt(offset int) byte {
	p := s.pos + offset
	if p >= len(s.source) {
		return 0
	}
	return s.source[p]
}

func (s *scanner) advance() byte {
	ch := s.source[s.pos]
	s.pos++
	if ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return ch
}

func (s *scanner) span(startLine, startCol int) ast.Span {
	return ast.Span{
		Start: ast.Position{Line: startLine, Column: startCol},
		End:   ast.Position{Line: s.line, Column: s.col},
	}
}

func (s *scanner) errorAt(line, col int, msg string) error {
	return &Error{
		Span:    ast.Span{Start: ast.Position{Line: line, Column: col}, End: ast.Position{Line: line, Column: col + 1}},
		Message: msg,
	}
}

func (s *scanner) skipWhitespaceAndComments() {
	for !s.atEnd() {
		ch := s.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n':
			s.advance()
		case ch == '/' && s.peekAt(1) == '/':
			for !s.atEnd() && s.peek() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlphaNumeric(ch byte) bool {
	return isAlpha(ch) || isDigit(ch)
}

// scanString keeps the literal text between the quotes as written; escape
// sequences are only recognised so an escaped quote does not end the string.
func (s *scanner) scanString() (Token, error) {
	startLine, startCol := s.line, s.col
	quote := s.advance()
	start := s.pos
	for !s.atEnd() {
		ch := s.peek()
		switch ch {
		case quote:
			text := s.source[start:s.pos]
			s.advance()
			return Token{Type: TokStringLit, Value: text, Span: s.span(startLine, startCol)}, nil
		case '\\':
			s.advance()
			if s.atEnd() {
				return Token{}, s.errorAt(startLine, startCol, "unterminated string literal")
			}
			s.advance()
		case '\n':
			return Token{}, s.errorAt(startLine, startCol, "unterminated string literal")
		default:
			s.advance()
		}
	}
	return Token{}, s.errorAt(startLine, startCol, "unterminated string literal")
}

func (s *scanner) scanNumber() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	isReal := false

	for !s.atEnd() && isDigit(s.peek()) {
		s.advance()
	}

	// After a '.' tail (t.1.2) only an integer index may follow.
	if s.prev != TokDot {
		if s.peek() == '.' && isDigit(s.peekAt(1)) {
			isReal = true
			s.advance()
			for !s.atEnd() && isDigit(s.peek()) {
				s.advance()
			}
		}
		if ch := s.peek(); ch == 'e' || ch == 'E' {
			next := s.peekAt(1)
			if isDigit(next) || ((next == '+' || next == '-') && isDigit(s.peekAt(2))) {
				isReal = true
				s.advance()
				if next == '+' || next == '-' {
					s.advance()
				}
				for !s.atEnd() && isDigit(s.peek()) {
					s.advance()
				}
			}
		}
	}

	typ := TokIntLit
	if isReal {
		typ = TokRealLit
	}
	return Token{Type: typ, Value: s.source[startPos:s.pos], Span: s.span(startLine, startCol)}
}

func (s *scanner) scanIdentOrKeyword() Token {
	startLine, startCol := s.line, s.col
	startPos := s.pos
	for !s.atEnd() && isAlphaNumeric(s.peek()) {
		s.advance()
	}
	text := s.source[startPos:s.pos]
	if typ, ok := keywords[text]; ok {
		return Token{Type: typ, Value: text, Span: s.span(startLine, startCol)}
	}
	return Token{Type: TokIdent, Value: text, Span: s.span(startLine, startCol)}
}

func (s *scanner) emit(typ TokenType, width int) Token {
	startLine, startCol := s.line, s.col
	start := s.pos
	for i := 0; i < width; i++ {
		s.advance()
	}
	return Token{Type: typ, Value: s.source[start:s.pos], Span: s.span(startLine, startCol)}
}

func (s *scanner) nextToken() (Token, error) {
	s.skipWhitespaceAndComments()
	if s.atEnd() {
		return Token{Type: TokEOF, Span: s.span(s.line, s.col)}, nil
	}

	ch := s.peek()
	next := s.peekAt(1)
	switch ch {
	case '(':
		return s.emit(TokLParen, 1), nil
	case ')':
		return s.emit(TokRParen, 1), nil
	case '[':
		return s.emit(TokLBracket, 1), nil
	case ']':
		return s.emit(TokRBracket, 1), nil
	case '{':
		return s.emit(TokLBrace, 1), nil
	case '}':
		return s.emit(TokRBrace, 1), nil
	case ',':
		return s.emit(TokComma, 1), nil
	case ';':
		return s.emit(TokSemicolon, 1), nil
	case '*':
		return s.emit(TokStar, 1), nil
	case ':':
		if next == '=' {
			return s.emit(TokAssign, 2), nil
		}
	case '+':
		if next == '=' {
			return s.emit(TokPlusAssign, 2), nil
		}
		return s.emit(TokPlus, 1), nil
	case '-':
		if next == '=' {
			return s.emit(TokMinusAssign, 2), nil
		}
		return s.emit(TokMinus, 1), nil
	case '/':
		if next == '=' {
			return s.emit(TokNotEq, 2), nil
		}
		return s.emit(TokSlash, 1), nil
	case '<':
		if next == '=' {
			return s.emit(TokLtEq, 2), nil
		}
		return s.emit(TokLt, 1), nil
	case '>':
		if next == '=' {
			return s.emit(TokGtEq, 2), nil
		}
		return s.emit(TokGt, 1), nil
	case '=':
		if next == '>' {
			return s.emit(TokArrow, 2), nil
		}
		return s.emit(TokEq, 1), nil
	case '.':
		if next == '.' {
			return s.emit(TokDotDot, 2), nil
		}
		return s.emit(TokDot, 1), nil
	case '"', '\'':
		return s.scanString()
	}

	if isDigit(ch) {
		return s.scanNumber(), nil
	}
	if isAlpha(ch) {
		return s.scanIdentOrKeyword(), nil
	}
	return Token{}, s.errorAt(s.line, s.col, fmt.Sprintf("unexpected character %q", rune(ch)))
}

// Tokenize breaks source code into a slice of tokens terminated by TokEOF.
func Tokenize(source string) ([]Token, error) {
	s := newScanner(source)
	var tokens []Token
	for {
		tok, err := s.nextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		s.prev = tok.Type
		if tok.Type == TokEOF {
			return tokens, nil
		}
	}
}
