package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1", `(pattern_literal value: (integer "1"))`},
		{`"s"`, `(pattern_literal value: (string "\"s\""))`},
		{"false", `(pattern_literal value: (boolean "false"))`},
		{"x", `(expr_identifier "x")`},
		{"_", `(wildcard_pattern "_")`},
		{"None", `(type_identifier "None")`},
		{"Option.None", `(scoped_type_identifier scope: (type_identifier "Option") name: (type_identifier "None"))`},
		{"(x)", `(expr_identifier "x")`},
		{"(x,)", `(pattern_tuple pattern: (expr_identifier "x"))`},
		{"(x, _)", `(pattern_tuple pattern: (expr_identifier "x") pattern: (wildcard_pattern "_"))`},
		{"[]", `(pattern_list)`},
		{"[a, [b]]", `(pattern_list pattern: (expr_identifier "a") pattern: (pattern_list pattern: (expr_identifier "b")))`},
		{"Some(x)", `(pattern_tuple_struct type: (type_identifier "Some") pattern: (expr_identifier "x"))`},
		{"Shape.Square(1.5)", `(pattern_tuple_struct type: (scoped_type_identifier scope: (type_identifier "Shape") name: (type_identifier "Square")) pattern: (pattern_literal value: (float "1.5")))`},
		{"Point { y: b, x: 0 }", `(pattern_record_struct type: (type_identifier "Point") field: (field_pattern name: (expr_identifier "y") pattern: (expr_identifier "b")) field: (field_pattern name: (expr_identifier "x") pattern: (pattern_literal value: (integer "0"))))`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := ParsePattern(strings.NewReader(tt.input)).Finish()
			require.NoError(t, err)
			require.Equal(t, tt.want, node.SExpr())
		})
	}
}

func TestParsePatternErrors(t *testing.T) {
	for _, src := range []string{"1 + 2", "Point { x }", "(a b)", "-"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParsePattern(strings.NewReader(src)).Finish()
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}
