package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/squirrel/peg"
)

var abc = peg.MustGrammar(peg.Rule{Name: "S", Clause: peg.Seq(peg.Text("a"), peg.Text("b"), peg.Text("c"))})

func parseABC(t *testing.T, input string) *peg.ParseResult {
	t.Helper()
	res, err := peg.Parse(abc, "S", input)
	require.NoError(t, err)
	return res
}

func TestLineEncoder(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "clean", input: "abc", want: ""},
		{name: "insertion", input: "aXbc", want: "in.txt:1:2: unexpected input \"X\"\n"},
		{name: "deletion", input: "ab", want: "in.txt:1:3: missing 'c'\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewLineEncoder(&buf, "in.txt").Encode(parseABC(t, tt.input)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTreeEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTreeEncoder(&buf, "").Encode(parseABC(t, "aXbc")))
	assert.Equal(t, `S 1:1-1:5
  <Terminal> 1:1-1:2 "a"
  <SyntaxError> 1:2-1:3 unexpected input "X"
  <Terminal> 1:3-1:4 "b"
  <Terminal> 1:4-1:5 "c"
`, buf.String())
}

type doc struct {
	TopRule  string `json:"topRule"`
	Complete bool   `json:"complete"`
	Errors   int    `json:"errors"`
	Tree     struct {
		Label    string `json:"label"`
		Children []struct {
			Label string `json:"label"`
			Text  string `json:"text"`
			Span  struct {
				Start struct{ Offset, Line, Column int } `json:"start"`
			} `json:"span"`
			Error *struct {
				Kind    string `json:"kind"`
				Message string `json:"message"`
				Missing string `json:"missing"`
			} `json:"error"`
		} `json:"children"`
	} `json:"tree"`
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf, "in.txt").Encode(parseABC(t, "ab")))

	var d doc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &d))
	assert.Equal(t, "S", d.TopRule)
	assert.True(t, d.Complete, "a recovered full-span root cannot be extended")
	assert.Equal(t, 1, d.Errors)
	assert.Equal(t, "S", d.Tree.Label)
	require.Len(t, d.Tree.Children, 3)

	first := d.Tree.Children[0]
	assert.Equal(t, "a", first.Text)
	assert.Nil(t, first.Error)

	missing := d.Tree.Children[2]
	require.NotNil(t, missing.Error)
	assert.Equal(t, "missing element", missing.Error.Kind)
	assert.Equal(t, "'c'", missing.Error.Missing)
	assert.Equal(t, 2, missing.Span.Start.Offset)
	assert.Equal(t, 3, missing.Span.Start.Column)
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Names {
		enc, err := New(name, &buf, "")
		require.NoError(t, err)
		assert.NotNil(t, enc)
	}
	_, err := New("xml", &buf, "")
	assert.ErrorContains(t, err, `unknown format "xml"`)
}
