package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/tree"
)

// TreeEncoder writes the AST as an indented outline, one node per line
// with its line:column span.
type TreeEncoder struct {
	w        io.Writer
	filename string
	res      *peg.ParseResult
}

func NewTreeEncoder(w io.Writer, filename string) *TreeEncoder {
	return &TreeEncoder{w: w, filename: filename}
}

func (e *TreeEncoder) Encode(res *peg.ParseResult) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TreeEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	index := tree.NewLineIndex(e.filename, e.res.Input)
	writeNode(&sb, tree.Build(e.res), index, 0)
	return []byte(sb.String()), nil
}

func writeNode(sb *strings.Builder, n *tree.Node, index *tree.LineIndex, depth int) {
	start, end := index.Position(n.Pos), index.Position(n.End())
	fmt.Fprintf(sb, "%s%s %d:%d-%d:%d", strings.Repeat("  ", depth), n.Label,
		start.Line, start.Column, end.Line, end.Column)
	switch {
	case n.IsError():
		fmt.Fprintf(sb, " %s", n.Error)
	case n.IsTerminal():
		fmt.Fprintf(sb, " %q", n.Text)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		writeNode(sb, child, index, depth+1)
	}
}
