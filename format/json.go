package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/tree"
)

type JSONEncoder struct {
	w        io.Writer
	filename string
	res      *peg.ParseResult
}

func NewJSONEncoder(w io.Writer, filename string) *JSONEncoder {
	return &JSONEncoder{w: w, filename: filename}
}

func (e *JSONEncoder) Encode(res *peg.ParseResult) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	index := tree.NewLineIndex(e.filename, e.res.Input)
	doc := jsonDocument{
		File:     e.filename,
		TopRule:  e.res.TopRule,
		Complete: e.res.Complete(),
		Errors:   e.res.ErrorCount(),
		Tree:     nodeToJSON(tree.Build(e.res), index, e.res),
	}
	return json.MarshalIndent(doc, "", "  ")
}

type jsonDocument struct {
	File     string    `json:"file,omitempty"`
	TopRule  string    `json:"topRule"`
	Complete bool      `json:"complete"`
	Errors   int       `json:"errors"`
	Tree     *jsonNode `json:"tree"`
}

type jsonNode struct {
	Label    string      `json:"label"`
	Span     jsonSpan    `json:"span"`
	Text     string      `json:"text,omitempty"`
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
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Missing string `json:"missing,omitempty"`
}

func position(p tree.Position) jsonPosition {
	return jsonPosition{Offset: p.Offset, Line: p.Line, Column: p.Column}
}

func nodeToJSON(n *tree.Node, index *tree.LineIndex, res *peg.ParseResult) *jsonNode {
	jn := &jsonNode{
		Label: n.Label,
		Span: jsonSpan{
			Start: position(index.Position(n.Pos)),
			End:   position(index.Position(n.End())),
		},
	}

	if n.IsTerminal() || n.IsError() {
		jn.Text = n.Text
	}

	if n.IsError() {
		jn.Error = &jsonError{
			Kind:    res.Classify(n.Result).String(),
			Message: n.Error,
		}
		if n.Result.Deleted != nil {
			jn.Error.Missing = n.Result.Deleted.String()
		}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*jsonNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = nodeToJSON(child, index, res)
		}
	}

	return jn
}
