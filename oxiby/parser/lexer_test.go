package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"fn", []TokenKind{TokenFn, TokenEOF}},
		{"pub struct Point {}", []TokenKind{TokenPub, TokenStruct, TokenIdentUpper, TokenLBrace, TokenRBrace, TokenEOF}},
		{"foo Foo _bar", []TokenKind{TokenIdentLower, TokenIdentUpper, TokenIdentLower, TokenEOF}},
		{"foo_Bar Foo_bar", []TokenKind{TokenIdentLower, TokenIdentUpper, TokenIdentLower, TokenEOF}},
		{"123", []TokenKind{TokenInt, TokenEOF}},
		{"3.14", []TokenKind{TokenFloat, TokenEOF}},
		{`"hello"`, []TokenKind{TokenString, TokenEOF}},
		{"// comment\nfn", []TokenKind{TokenFn, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{".. ..= ..<", []TokenKind{TokenRange, TokenRangeInclusive, TokenRangeExclusive, TokenEOF}},
		{"1..5", []TokenKind{TokenInt, TokenRange, TokenInt, TokenEOF}},
		{"t.0.1", []TokenKind{TokenIdentLower, TokenDot, TokenInt, TokenDot, TokenInt, TokenEOF}},
		{"-> = : ,", []TokenKind{TokenArrow, TokenAssign, TokenColon, TokenComma, TokenEOF}},
		{"self true false", []TokenKind{TokenSelf, TokenTrue, TokenFalse, TokenEOF}},
		{"@", []TokenKind{TokenError, TokenEOF}},
		{`"open`, []TokenKind{TokenError, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.oxi")
			var got []TokenKind
			for {
				tok := lexer.NextToken()
				if tok.Kind != TokenWhitespace && tok.Kind != TokenComment {
					got = append(got, tok.Kind)
				}
				if tok.Kind == TokenEOF {
					break
				}
			}
			if len(got) != len(tt.expected) {
				t.Errorf("got %d tokens, want %d: %v", len(got), len(tt.expected), got)
				return
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("fn\n  main"), "test.oxi")

	tok := lexer.NextToken()
	require.Equal(t, TokenFn, tok.Kind)
	require.Equal(t, Position{File: "test.oxi", Offset: 0, Line: 1, Column: 1}, tok.Span.Start)
	require.Equal(t, 2, tok.Span.End.Offset)

	require.Equal(t, TokenWhitespace, lexer.NextToken().Kind)

	tok = lexer.NextToken()
	require.Equal(t, TokenIdentLower, tok.Kind)
	require.Equal(t, "main", tok.Literal)
	require.Equal(t, 2, tok.Span.Start.Line)
	require.Equal(t, 3, tok.Span.Start.Column)
}

func TestTokenizeSeparatesTrivia(t *testing.T) {
	tokens, trivia := Tokenize([]byte("// doc\nfn main() {} // tail"), "test.oxi")

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	require.Equal(t, []TokenKind{TokenFn, TokenIdentLower, TokenLParen, TokenRParen, TokenLBrace, TokenRBrace, TokenEOF}, kinds)

	var comments []string
	for _, tok := range trivia {
		if tok.Kind == TokenComment {
			comments = append(comments, tok.Literal)
		}
	}
	require.Equal(t, []string{"// doc", "// tail"}, comments)
}

func TestLexerMultilineString(t *testing.T) {
	tokens, _ := Tokenize([]byte("\"a\nb\" x"), "")
	require.Equal(t, TokenString, tokens[0].Kind)
	require.Equal(t, "\"a\nb\"", tokens[0].Literal)
	require.Equal(t, 2, tokens[1].Span.Start.Line)
}

func TestLookupKeyword(t *testing.T) {
	require.Equal(t, TokenImpl, LookupKeyword("impl"))
	require.Equal(t, TokenIdentUpper, LookupKeyword("Fn"))
	require.Equal(t, TokenIdentLower, LookupKeyword("fnord"))
	require.Equal(t, TokenIdentLower, LookupKeyword("_"))
}
