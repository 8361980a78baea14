package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(tree *parser.Tree) error {
	text, err := e.MarshalText(tree)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(tree *parser.Tree) ([]byte, error) {
	return json.MarshalIndent(treeToJSON(tree), "", "  ")
}

type astJSONTree struct {
	File   string          `json:"file,omitempty"`
	Root   *parser.Node    `json:"root"`
	Errors []*parser.Error `json:"errors,omitempty"`
}

func treeToJSON(tree *parser.Tree) *astJSONTree {
	return &astJSONTree{
		File:   tree.File,
		Root:   tree.Root,
		Errors: tree.Errors,
	}
}
