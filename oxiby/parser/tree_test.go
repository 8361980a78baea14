package parser

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const brokenSource = `fn a() { 1 + }
fn b() { 2 }
struct @
enum E { A }
`

func TestFailFastPolicy(t *testing.T) {
	tree, err := Parse([]byte(brokenSource), WithFile("broken.oxi"))
	require.Nil(t, tree)
	require.ErrorIs(t, err, ErrSyntax)

	var perr *Error
	require.True(t, errors.As(err, &perr))
	require.Equal(t, 1, perr.Pos.Line)
	require.Equal(t, "broken.oxi", perr.Pos.File)
}

func TestTolerantPolicy(t *testing.T) {
	tree, err := Parse([]byte(brokenSource), WithPolicy(PolicyTolerant))
	require.Error(t, err)
	require.NotNil(t, tree)

	var kinds []NodeKind
	for _, child := range tree.Root.Children {
		kinds = append(kinds, child.Kind)
	}
	require.Equal(t, []NodeKind{KindError, KindItemFn, KindError, KindItemEnum}, kinds)

	require.Len(t, tree.Errors, 2)
	require.ErrorIs(t, tree.Errors[0], ErrSyntax)
	require.ErrorIs(t, tree.Errors[1], ErrLexical)
	require.Equal(t, 3, tree.Errors[1].Pos.Line)
	require.ErrorIs(t, err, ErrLexical)

	errNode := tree.Root.Children[0]
	require.Equal(t, "fn a() { 1 + }", tree.Text(errNode))
	require.Same(t, tree.Errors[0], errNode.Error)

	require.Len(t, tree.Items(), 2)
}

func TestTolerantPolicyWithoutErrors(t *testing.T) {
	tree, err := Parse([]byte(sampleSource), WithPolicy(PolicyTolerant))
	require.NoError(t, err)
	require.Empty(t, tree.Errors)
}

func TestParseIsDeterministic(t *testing.T) {
	first, err := Parse([]byte(sampleSource))
	require.NoError(t, err)
	second, err := Parse([]byte(sampleSource))
	require.NoError(t, err)
	require.Equal(t, first.Root.SExpr(), second.Root.SExpr())
}

func TestSpansNestAndOrder(t *testing.T) {
	tree, err := Parse([]byte(sampleSource))
	require.NoError(t, err)

	tree.Root.Walk(func(n *Node) bool {
		prevEnd := n.Span.Start.Offset
		for _, child := range n.Children {
			require.True(t, n.Span.Contains(child.Span),
				"%s %v does not contain %s %v", n.Kind, n.Span, child.Kind, child.Span)
			require.LessOrEqual(t, prevEnd, child.Span.Start.Offset,
				"%s overlaps its previous sibling in %s", child.Kind, n.Kind)
			prevEnd = child.Span.End.Offset
		}
		return true
	})
}

// Every item re-parsed on its own from the text it spans yields the same
// subtree.
func TestItemsReparseFromTheirText(t *testing.T) {
	tree, err := Parse([]byte(sampleSource))
	require.NoError(t, err)

	for _, item := range tree.Items() {
		text := tree.Text(item)
		t.Run(item.Kind.String(), func(t *testing.T) {
			again, err := ParseItem(strings.NewReader(text)).Finish()
			require.NoError(t, err)
			require.Equal(t, item.SExpr(), again.SExpr())
		})
	}
}

func TestExpressionsReparseFromTheirText(t *testing.T) {
	tree, err := Parse([]byte(sampleSource))
	require.NoError(t, err)

	count := 0
	tree.Root.Walk(func(n *Node) bool {
		if n.Kind == KindBinary || n.Kind == KindCall || n.Kind == KindMatch {
			again, err := ParseExpression(strings.NewReader(tree.Text(n))).Finish()
			require.NoError(t, err)
			require.Equal(t, n.SExpr(), again.SExpr())
			count++
		}
		return true
	})
	require.Greater(t, count, 0)
}

func TestDocComment(t *testing.T) {
	src := "// Adds numbers.\n// Really.\nfn add() {}\n\nfn bare() {}\n"
	tree, err := Parse([]byte(src), WithComments())
	require.NoError(t, err)

	items := tree.Items()
	require.Len(t, items, 2)
	require.Equal(t, "Adds numbers.\nReally.", tree.DocComment(items[0]))
	require.Equal(t, "", tree.DocComment(items[1]))
}

func TestEmptySource(t *testing.T) {
	tree, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, KindSourceFile, tree.Root.Kind)
	require.Empty(t, tree.Root.Children)
}

func TestNodeJSON(t *testing.T) {
	node := parseExpr(t, "a + 1")
	data, err := json.Marshal(node)
	require.NoError(t, err)

	var decoded struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind  string `json:"kind"`
			Field string `json:"field"`
			Token string `json:"token"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, "binary", decoded.Kind)
	require.Len(t, decoded.Children, 3)
	require.Equal(t, "lhs", decoded.Children[0].Field)
	require.Equal(t, "+", decoded.Children[1].Token)
	require.Equal(t, "rhs", decoded.Children[2].Field)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("tolerant")
	require.NoError(t, err)
	require.Equal(t, PolicyTolerant, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	require.Equal(t, PolicyFailFast, p)

	_, err = ParsePolicy("lenient")
	require.Error(t, err)
}
