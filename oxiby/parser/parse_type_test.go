package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", `(variable_type "a")`},
		{"Int", `(concrete_type type_name: (type_identifier "Int"))`},
		{"List<a>", `(concrete_type type_name: (type_identifier "List") type_parameters: (type_params type: (variable_type "a")))`},
		{"Map.Entry<K, V>", `(concrete_type qualifier: (type_identifier "Map") type_name: (type_identifier "Entry") type_parameters: (type_params type: (concrete_type type_name: (type_identifier "K")) type: (concrete_type type_name: (type_identifier "V"))))`},
		{"()", `(tuple_type)`},
		{"(Int, a,)", `(tuple_type type: (concrete_type type_name: (type_identifier "Int")) type: (variable_type "a"))`},
		{"Fn()", `(function_type)`},
		{"Fn(Int) -> Str", `(function_type parameter: (concrete_type type_name: (type_identifier "Int")) return_type: (concrete_type type_name: (type_identifier "Str")))`},
		{"Fn", `(concrete_type type_name: (type_identifier "Fn"))`},
		{"List<List<Int>>", `(concrete_type type_name: (type_identifier "List") type_parameters: (type_params type: (concrete_type type_name: (type_identifier "List") type_parameters: (type_params type: (concrete_type type_name: (type_identifier "Int"))))))`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := ParseType(strings.NewReader(tt.input)).Finish()
			require.NoError(t, err)
			require.Equal(t, tt.want, node.SExpr())
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, src := range []string{"1", "List<>", "List<Int", "Fn(Int"} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseType(strings.NewReader(src)).Finish()
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}
