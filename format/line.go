package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/tree"
)

// LineEncoder writes one line per syntax error:
//
//	file:line:column: message
type LineEncoder struct {
	w        io.Writer
	filename string
	res      *peg.ParseResult
}

func NewLineEncoder(w io.Writer, filename string) *LineEncoder {
	return &LineEncoder{w: w, filename: filename}
}

func (e *LineEncoder) Encode(res *peg.ParseResult) error {
	e.res = res
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	for _, d := range tree.Diagnostics(e.res, e.filename) {
		fmt.Fprintln(&sb, d)
	}
	return []byte(sb.String()), nil
}
