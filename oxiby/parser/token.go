package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

// Contains reports whether other lies within s, comparing byte offsets.
func (s Span) Contains(other Span) bool {
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment

	// Identifiers and literals
	TokenIdentLower
	TokenIdentUpper
	TokenInt
	TokenFloat
	TokenString

	// Keywords
	TokenPub
	TokenEnum
	TokenFn
	TokenStruct
	TokenTrait
	TokenImpl
	TokenFor
	TokenWhere
	TokenType
	TokenUse
	TokenLet
	TokenMatch
	TokenIf
	TokenElse
	TokenWhile
	TokenLoop
	TokenBreak
	TokenContinue
	TokenReturn
	TokenIn
	TokenSelf
	TokenTrue
	TokenFalse

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenComma
	TokenColon
	TokenDot
	TokenArrow

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenNot
	TokenAnd
	TokenOr
	TokenRange
	TokenRangeInclusive
	TokenRangeExclusive
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:        "end of input",
	TokenError:      "invalid token",
	TokenWhitespace: "whitespace",
	TokenComment:    "comment",

	TokenIdentLower: "identifier",
	TokenIdentUpper: "type identifier",
	TokenInt:        "integer",
	TokenFloat:      "float",
	TokenString:     "string",

	TokenPub:      "pub",
	TokenEnum:     "enum",
	TokenFn:       "fn",
	TokenStruct:   "struct",
	TokenTrait:    "trait",
	TokenImpl:     "impl",
	TokenFor:      "for",
	TokenWhere:    "where",
	TokenType:     "type",
	TokenUse:      "use",
	TokenLet:      "let",
	TokenMatch:    "match",
	TokenIf:       "if",
	TokenElse:     "else",
	TokenWhile:    "while",
	TokenLoop:     "loop",
	TokenBreak:    "break",
	TokenContinue: "continue",
	TokenReturn:   "return",
	TokenIn:       "in",
	TokenSelf:     "self",
	TokenTrue:     "true",
	TokenFalse:    "false",

	TokenLParen:   "(",
	TokenRParen:   ")",
	TokenLBrace:   "{",
	TokenRBrace:   "}",
	TokenLBracket: "[",
	TokenRBracket: "]",
	TokenComma:    ",",
	TokenColon:    ":",
	TokenDot:      ".",
	TokenArrow:    "->",

	TokenAssign:         "=",
	TokenEQ:             "==",
	TokenNE:             "!=",
	TokenLT:             "<",
	TokenLE:             "<=",
	TokenGT:             ">",
	TokenGE:             ">=",
	TokenPlus:           "+",
	TokenMinus:          "-",
	TokenStar:           "*",
	TokenSlash:          "/",
	TokenPercent:        "%",
	TokenNot:            "!",
	TokenAnd:            "&&",
	TokenOr:             "||",
	TokenRange:          "..",
	TokenRangeInclusive: "..=",
	TokenRangeExclusive: "..<",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenPub && k <= TokenFalse
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdentLower, TokenIdentUpper, TokenInt, TokenFloat, TokenString, TokenError:
		return fmt.Sprintf("%s %q", t.Kind, t.Literal)
	}
	return fmt.Sprintf("%q", t.Literal)
}

var keywords = map[string]TokenKind{
	"pub":      TokenPub,
	"enum":     TokenEnum,
	"fn":       TokenFn,
	"struct":   TokenStruct,
	"trait":    TokenTrait,
	"impl":     TokenImpl,
	"for":      TokenFor,
	"where":    TokenWhere,
	"type":     TokenType,
	"use":      TokenUse,
	"let":      TokenLet,
	"match":    TokenMatch,
	"if":       TokenIf,
	"else":     TokenElse,
	"while":    TokenWhile,
	"loop":     TokenLoop,
	"break":    TokenBreak,
	"continue": TokenContinue,
	"return":   TokenReturn,
	"in":       TokenIn,
	"self":     TokenSelf,
	"true":     TokenTrue,
	"false":    TokenFalse,
}

// LookupKeyword classifies a word. Words that are not reserved are split
// into type and expression identifiers by the case of their first byte.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	if len(ident) > 0 && ident[0] >= 'A' && ident[0] <= 'Z' {
		return TokenIdentUpper
	}
	return TokenIdentLower
}
