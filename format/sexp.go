package format

import (
	"io"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

// SExprEncoder writes one S-expression per tree, terminated by a newline.
type SExprEncoder struct {
	w io.Writer
}

func NewSExprEncoder(w io.Writer) *SExprEncoder {
	return &SExprEncoder{w: w}
}

func (e *SExprEncoder) Encode(tree *parser.Tree) error {
	_, err := io.WriteString(e.w, tree.Root.SExpr()+"\n")
	return err
}
