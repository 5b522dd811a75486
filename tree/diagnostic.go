package tree

import "github.com/dhamidi/squirrel/peg"

// Diagnostic is a syntax error located in the source.
type Diagnostic struct {
	Kind    peg.ErrorKind
	Start   Position
	End     Position
	Message string
}

func (d Diagnostic) String() string {
	return d.Start.String() + ": " + d.Message
}

// Diagnostics returns one diagnostic per syntax error of res, in input
// order. A total failure starts where the furthest terminal match ended.
func Diagnostics(res *peg.ParseResult, filename string) []Diagnostic {
	x := NewLineIndex(filename, res.Input)
	var diags []Diagnostic
	for _, e := range res.SyntaxErrors() {
		kind := res.Classify(e)
		start, end := e.Pos, e.End()
		if kind == peg.TotalFailure {
			start = res.Furthest
		}
		diags = append(diags, Diagnostic{
			Kind:    kind,
			Start:   x.Position(start),
			End:     x.Position(end),
			Message: res.Describe(e),
		})
	}
	return diags
}
