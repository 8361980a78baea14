package parser

import "unicode/utf8"

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
	// last significant token kind; a digit run after "." is a tuple index,
	// never the start of a float
	last TokenKind
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
		last:   TokenEOF,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken returns the next token including trivia. Callers that only
// want significant tokens should use Tokenize.
func (l *Lexer) NextToken() Token {
	tok := l.next()
	if tok.Kind != TokenWhitespace && tok.Kind != TokenComment {
		l.last = tok.Kind
	}
	return tok
}

func (l *Lexer) next() Token {
	startPos := l.Position()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}

	if isSpace(ch) {
		return l.scanWhitespace(startPos)
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) {
		return l.scanNumber(startPos)
	}

	if ch == '"' {
		return l.scanString(startPos)
	}

	return l.scanOperator(startPos)
}

func (l *Lexer) makeToken(kind TokenKind, start Position) Token {
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: l.Position()},
		Literal: string(l.input[start.Offset:l.pos]),
	}
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isSpace(l.peek()) {
		l.advance()
	}
	return l.makeToken(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	for l.pos < len(l.input) && l.peek() != '\n' {
		l.advance()
	}
	return l.makeToken(TokenComment, start)
}

// scanIdentOrKeyword reads an identifier. Type identifiers (upper-case
// first letter) contain no underscores, so Foo_Bar is Foo followed by _Bar.
func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	upper := isUpper(l.peek())
	for isIdentPart(l.peek()) && !(upper && l.peek() == '_') {
		l.advance()
	}
	tok := l.makeToken(TokenIdentLower, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.last != TokenDot && l.peek() == '.' && isDigit(l.peekN(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
		return l.makeToken(TokenFloat, start)
	}
	return l.makeToken(TokenInt, start)
}

// scanString reads a double-quoted string. There are no escape sequences;
// the string ends at the next quote and may span lines.
func (l *Lexer) scanString(start Position) Token {
	l.advance()
	for l.pos < len(l.input) && l.peek() != '"' {
		l.advance()
	}
	if l.pos >= len(l.input) {
		return l.makeToken(TokenError, start)
	}
	l.advance()
	return l.makeToken(TokenString, start)
}

func (l *Lexer) scanOperator(start Position) Token {
	ch := l.peek()
	next := l.peekN(1)

	two := func(kind TokenKind) Token {
		l.advanceN(2)
		return l.makeToken(kind, start)
	}
	one := func(kind TokenKind) Token {
		l.advance()
		return l.makeToken(kind, start)
	}

	switch ch {
	case '(':
		return one(TokenLParen)
	case ')':
		return one(TokenRParen)
	case '{':
		return one(TokenLBrace)
	case '}':
		return one(TokenRBrace)
	case '[':
		return one(TokenLBracket)
	case ']':
		return one(TokenRBracket)
	case ',':
		return one(TokenComma)
	case ':':
		return one(TokenColon)
	case '.':
		if next == '.' {
			switch l.peekN(2) {
			case '=':
				l.advanceN(3)
				return l.makeToken(TokenRangeInclusive, start)
			case '<':
				l.advanceN(3)
				return l.makeToken(TokenRangeExclusive, start)
			}
			return two(TokenRange)
		}
		return one(TokenDot)
	case '=':
		if next == '=' {
			return two(TokenEQ)
		}
		return one(TokenAssign)
	case '!':
		if next == '=' {
			return two(TokenNE)
		}
		return one(TokenNot)
	case '<':
		if next == '=' {
			return two(TokenLE)
		}
		return one(TokenLT)
	case '>':
		if next == '=' {
			return two(TokenGE)
		}
		return one(TokenGT)
	case '-':
		if next == '>' {
			return two(TokenArrow)
		}
		return one(TokenMinus)
	case '+':
		return one(TokenPlus)
	case '*':
		return one(TokenStar)
	case '/':
		return one(TokenSlash)
	case '%':
		return one(TokenPercent)
	case '&':
		if next == '&' {
			return two(TokenAnd)
		}
	case '|':
		if next == '|' {
			return two(TokenOr)
		}
	}

	// Unrecognized input is consumed one rune at a time so the error token
	// covers a whole UTF-8 sequence.
	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.makeToken(TokenError, start)
}

// Tokenize lexes the whole input, returning the significant tokens
// (terminated by TokenEOF) and the trivia separately.
func Tokenize(input []byte, file string) (tokens []Token, trivia []Token) {
	l := NewLexer(input, file)
	for {
		tok := l.NextToken()
		if tok.Kind == TokenWhitespace || tok.Kind == TokenComment {
			trivia = append(trivia, tok)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, trivia
		}
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isUpper(ch byte) bool {
	return ch >= 'A' && ch <= 'Z'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
