package parser

import "encoding/json"

type jsonNode struct {
	Kind     string      `json:"kind"`
	Field    string      `json:"field,omitempty"`
	Span     *jsonSpan   `json:"span,omitempty"`
	Token    string      `json:"token,omitempty"`
	Error    *jsonError  `json:"error,omitempty"`
	Children []*jsonNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

type jsonError struct {
	Class    string   `json:"class"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
	Column   int      `json:"column,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Got      string   `json:"got,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.toJSON(""))
}

func (e *Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.toJSON())
}

func (e *Error) toJSON() *jsonError {
	je := &jsonError{
		Class:   e.Class.String(),
		Message: e.Message,
		Line:    e.Pos.Line,
		Column:  e.Pos.Column,
	}
	for _, exp := range e.Expected {
		je.Expected = append(je.Expected, exp.String())
	}
	if e.Got != nil {
		je.Got = e.Got.Literal
	}
	return je
}

func (n *Node) toJSON(field string) *jsonNode {
	jn := &jsonNode{
		Kind:  n.Kind.String(),
		Field: field,
	}

	if n.Span.Start.Line != 0 || n.Span.End.Line != 0 {
		jn.Span = &jsonSpan{
			Start: jsonPosition{Offset: n.Span.Start.Offset, Line: n.Span.Start.Line, Column: n.Span.Start.Column},
			End:   jsonPosition{Offset: n.Span.End.Offset, Line: n.Span.End.Line, Column: n.Span.End.Column},
		}
	}

	if n.Token != nil {
		jn.Token = n.Token.Literal
	}

	if n.Error != nil {
		jn.Error = n.Error.toJSON()
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = child.toJSON(n.FieldName(i))
		}
	}

	return jn
}
