// Package format renders parse results as JSON, indented trees or
// one-line diagnostics.
package format

import (
	"encoding"
	"fmt"
	"io"

	"github.com/dhamidi/squirrel/peg"
)

// Encoder writes parse results to an output stream.
type Encoder interface {
	encoding.TextMarshaler
	Encode(res *peg.ParseResult) error
}

// New returns the encoder for the named format: "json", "tree" or
// "errors". Filename is used in positions.
func New(name string, w io.Writer, filename string) (Encoder, error) {
	switch name {
	case "json":
		return NewJSONEncoder(w, filename), nil
	case "tree":
		return NewTreeEncoder(w, filename), nil
	case "errors":
		return NewLineEncoder(w, filename), nil
	}
	return nil, fmt.Errorf("unknown format %q", name)
}

// Names lists the supported format names.
var Names = []string{"json", "tree", "errors"}
