package parser

import (
	"testing"
)

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "end of input"},
		{TokenError, "invalid token"},
		{TokenIdentLower, "identifier"},
		{TokenIdentUpper, "type identifier"},
		{TokenInt, "integer"},
		{TokenString, "string"},
		{TokenTrue, "true"},
		{TokenImpl, "impl"},
		{TokenLParen, "("},
		{TokenArrow, "->"},
		{TokenRangeInclusive, "..="},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestTokenKindIsKeyword(t *testing.T) {
	for word, kind := range keywords {
		if !kind.IsKeyword() {
			t.Errorf("%s: IsKeyword() = false", word)
		}
	}
	for _, kind := range []TokenKind{TokenIdentLower, TokenIdentUpper, TokenLParen, TokenEOF} {
		if kind.IsKeyword() {
			t.Errorf("%s: IsKeyword() = true", kind)
		}
	}
}

func TestDescribeExpected(t *testing.T) {
	tests := []struct {
		expected []TokenKind
		want     string
	}{
		{[]TokenKind{TokenEOF}, "end of input"},
		{[]TokenKind{TokenComma, TokenRBrace}, `"," or "}"`},
		{[]TokenKind{TokenIdentLower, TokenInt, TokenFor}, `identifier, integer or "for"`},
	}
	for _, tt := range tests {
		if got := describeExpected(tt.expected); got != tt.want {
			t.Errorf("describeExpected(%v) = %q, want %q", tt.expected, got, tt.want)
		}
	}
}
