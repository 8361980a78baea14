// Package parser implements the lexer and parser for Oxiby source code.
//
// # Overview
//
// Oxiby is a small Rust-like language with structs, enums, traits, trait
// implementations, closures, pattern matching, ranges and map/list
// literals. The parser turns source text into a concrete syntax tree whose
// node kinds and field names follow the tree-sitter grammar of the
// language, so tools written against either tree see the same shape.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │   Trivia    │     │ ERROR nodes │
//	                    │ (comments)  │     │  (tolerant) │
//	                    └─────────────┘     └─────────────┘
//
// # Usage
//
//	tree, err := parser.Parse(src, parser.WithFile("main.oxi"))
//
// Smaller start symbols are available for tools and tests:
//
//	node, err := parser.ParseExpression(strings.NewReader("1 + 2 * 3")).Finish()
//	fmt.Println(node.SExpr())
//	// (binary lhs: (integer "1") operator: (operator "+") rhs: (binary ...))
//
// # Nodes and fields
//
// Every node has a Kind, a Span and its children in source order. Children
// may be stored under a field name:
//
//	call := node.Field("name")         // first child named "name"
//	args := node.FieldAll("argument")  // every child named "argument"
//
// A missing field returns nil, which is distinct from a present node with
// no children (for example the arguments of f()).
//
// Kinds are grouped into the supertypes item, expression and
// expression_with_trailing_block; use NodeKind.Is to test membership.
//
// # Lexical rules
//
// Whitespace and // comments are trivia. Identifiers starting with an
// uppercase ASCII letter are type identifiers, all others expression
// identifiers; the distinction is lexical and never depends on context.
// A digit run directly after "." is always an integer, so t.0.1 indexes a
// nested tuple.
//
// # Disambiguation
//
//   - [a: b] is a map and [a, b] a list. The token after the first element
//     decides; mixing the two forms is an error.
//   - (e) is a parenthesized expression, (e,) a one-element tuple and ()
//     the empty tuple.
//   - Keyword arguments and parameters carry a leading colon (:name: x) and
//     must follow every positional one.
//   - A match arm needs a trailing comma unless its body is a block or it
//     is the last arm.
//   - In the condition of if and while, the subject of match and the
//     iterable of for, Name { ... } is not read as a struct literal.
//     Parenthesize the literal to use it there.
//
// # Errors
//
// Errors are *Error values classified as lexical, syntax or structural
// (see ErrLexical, ErrSyntax and ErrStructural). The Policy decides what
// happens on the first one: PolicyFailFast returns it, PolicyTolerant
// records it, wraps the rest of the item in an ERROR node and continues
// at the next top-level item.
package parser
