package parser

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrLexical    = errors.New("lexical error")
	ErrSyntax     = errors.New("syntax error")
	ErrStructural = errors.New("structural error")
)

type ErrorClass int

const (
	ClassSyntax ErrorClass = iota
	ClassLexical
	ClassStructural
)

func (c ErrorClass) String() string {
	switch c {
	case ClassLexical:
		return "lexical error"
	case ClassStructural:
		return "structural error"
	}
	return "syntax error"
}

// Error describes a single parse failure. Got is the token found at the
// failure position; for failures at the end of input it is the EOF token.
type Error struct {
	Class    ErrorClass
	Message  string
	Expected []TokenKind
	Got      *Token
	Pos      Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Class, e.Message)
}

// Is matches the class sentinels. A structural error is also a syntax
// error: both reject the token stream rather than the characters in it.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrLexical:
		return e.Class == ClassLexical
	case ErrSyntax:
		return e.Class == ClassSyntax || e.Class == ClassStructural
	case ErrStructural:
		return e.Class == ClassStructural
	}
	return false
}

// Span returns the source range of the offending token.
func (e *Error) Span() Span {
	if e.Got != nil {
		return e.Got.Span
	}
	return Span{Start: e.Pos, End: e.Pos}
}

// ErrorList collects the errors of a tolerant parse in source order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(l[0].Error())
	fmt.Fprintf(&sb, " (and %d more errors)", len(l)-1)
	return sb.String()
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil when l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// AsErrors flattens err into the parse errors it carries.
func AsErrors(err error) []*Error {
	var list ErrorList
	if errors.As(err, &list) {
		return list
	}
	var single *Error
	if errors.As(err, &single) {
		return []*Error{single}
	}
	return nil
}

func describeExpected(expected []TokenKind) string {
	names := make([]string, len(expected))
	for i, k := range expected {
		if k.IsKeyword() || k >= TokenLParen {
			names[i] = fmt.Sprintf("%q", k.String())
		} else {
			names[i] = k.String()
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}
