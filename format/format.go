package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

// TreeEncoder writes a parsed file in some output format.
type TreeEncoder interface {
	Encode(tree *parser.Tree) error
}

// Formats lists the names accepted by NewTreeEncoder.
var Formats = []string{"sexp", "json", "text"}

func NewTreeEncoder(name string, w io.Writer, positions bool) (TreeEncoder, error) {
	switch name {
	case "sexp", "":
		return NewSExprEncoder(w), nil
	case "json":
		return NewASTJSONEncoder(w), nil
	case "text":
		return &TextEncoder{w: w, positions: positions}, nil
	}
	return nil, fmt.Errorf("unknown format %q (want one of %v)", name, Formats)
}

// TextEncoder writes the indented tree dump of Node.String.
type TextEncoder struct {
	w         io.Writer
	positions bool
}

func NewTextEncoder(w io.Writer, positions bool) *TextEncoder {
	return &TextEncoder{w: w, positions: positions}
}

func (e *TextEncoder) Encode(tree *parser.Tree) error {
	text := tree.Root.String()
	if e.positions {
		text = tree.Root.StringWithPositions()
	}
	_, err := io.WriteString(e.w, text)
	return err
}
