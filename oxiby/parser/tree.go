package parser

import (
	"bytes"
	"strings"
)

// Tree is the result of parsing one source file.
type Tree struct {
	Root     *Node
	Source   []byte
	File     string
	Comments []Token
	Errors   ErrorList
}

// Parse parses a whole source file. With PolicyFailFast it returns either
// a tree or the first error. With PolicyTolerant it always returns a tree;
// the error, if any, is the tree's ErrorList.
func Parse(src []byte, opts ...Option) (*Tree, error) {
	p := ParseSourceFile(bytes.NewReader(src), opts...)
	root, err := p.Finish()
	if root == nil {
		return nil, err
	}
	tree := &Tree{
		Root:     root,
		Source:   src,
		File:     p.file,
		Comments: p.Comments(),
	}
	if err != nil {
		tree.Errors = AsErrors(err)
	}
	return tree, err
}

// Items returns the top-level items, skipping ERROR nodes.
func (t *Tree) Items() []*Node {
	var items []*Node
	for _, child := range t.Root.Children {
		if child.Kind.Is(SupertypeItem) {
			items = append(items, child)
		}
	}
	return items
}

func (t *Tree) Text(n *Node) string {
	return n.Text(t.Source)
}

// DocComment returns the text of the run of line comments that ends on the
// line directly above n, with the comment markers removed. The tree must
// have been parsed WithComments.
func (t *Tree) DocComment(n *Node) string {
	line := n.Span.Start.Line - 1
	end := -1
	for i := len(t.Comments) - 1; i >= 0; i-- {
		if t.Comments[i].Span.Start.Line == line {
			end = i
			break
		}
	}
	if end < 0 {
		return ""
	}
	start := end
	for start > 0 && t.Comments[start-1].Span.Start.Line == t.Comments[start].Span.Start.Line-1 {
		start--
	}
	lines := make([]string, 0, end-start+1)
	for _, c := range t.Comments[start : end+1] {
		text := strings.TrimPrefix(c.Literal, "//")
		lines = append(lines, strings.TrimPrefix(text, " "))
	}
	return strings.Join(lines, "\n")
}
