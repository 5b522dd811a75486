package tree

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/squirrel/peg"
)

func listGrammar() *peg.Grammar {
	return peg.MustGrammar(
		peg.Rule{Name: "S", Clause: peg.Seq(peg.Ref("Item"), peg.ZeroOrMore(peg.Seq(peg.Text(","), peg.Ref("WS"), peg.Ref("Item"))))},
		peg.Rule{Name: "Item", Clause: peg.OneOrMore(peg.Chars(peg.Range('a', 'z')))},
		peg.Rule{Name: "WS", Clause: peg.ZeroOrMore(peg.Text(" ")), Transparent: true},
	)
}

func parse(t *testing.T, g *peg.Grammar, input string) *peg.ParseResult {
	t.Helper()
	res, err := peg.Parse(g, "S", input)
	require.NoError(t, err)
	return res
}

func labels(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func texts(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Text)
	}
	return out
}

func TestBuild_ElidesTransparentRules(t *testing.T) {
	root := Build(parse(t, listGrammar(), "ab, c"))

	assert.Equal(t, "S", root.Label)
	assert.Equal(t, 0, root.Pos)
	assert.Equal(t, 5, root.Len)
	assert.Equal(t, []string{"Item", TerminalLabel, TerminalLabel, "Item"}, labels(root.Children))
	assert.Equal(t, []string{"ab", ",", " ", "c"}, texts(root.Children))

	item := root.Children[0]
	assert.Equal(t, []string{"a", "b"}, texts(item.Children))
	assert.True(t, item.Children[0].IsTerminal())
	assert.Empty(t, root.Errors())
	assert.Len(t, root.Find("Item"), 2)
}

func TestBuild_SyntaxErrors(t *testing.T) {
	abc := peg.MustGrammar(peg.Rule{Name: "S", Clause: peg.Seq(peg.Text("a"), peg.Text("b"), peg.Text("c"))})
	single := peg.MustGrammar(peg.Rule{Name: "S", Clause: peg.Text("a")})

	tests := []struct {
		name       string
		grammar    *peg.Grammar
		input      string
		wantLabels []string
		wantError  string
	}{
		{
			name:       "recovered insertion",
			grammar:    abc,
			input:      "aXbc",
			wantLabels: []string{TerminalLabel, SyntaxErrorLabel, TerminalLabel, TerminalLabel},
			wantError:  `unexpected input "X"`,
		},
		{
			name:       "deletion at end",
			grammar:    abc,
			input:      "ab",
			wantLabels: []string{TerminalLabel, TerminalLabel, SyntaxErrorLabel},
			wantError:  `missing 'c'`,
		},
		{
			name:       "total failure",
			grammar:    single,
			input:      "q",
			wantLabels: []string{SyntaxErrorLabel},
			wantError:  "no match for S; input matched up to offset 0",
		},
		{
			name:       "trailing input",
			grammar:    single,
			input:      "abc",
			wantLabels: []string{TerminalLabel, SyntaxErrorLabel},
			wantError:  `unexpected trailing input "bc"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := Build(parse(t, tt.grammar, tt.input))

			assert.Equal(t, "S", root.Label)
			assert.Equal(t, len(tt.input), root.Len)
			assert.Equal(t, tt.wantLabels, labels(root.Children))
			errs := root.Errors()
			require.Len(t, errs, 1)
			assert.True(t, errs[0].IsError())
			assert.Equal(t, tt.wantError, errs[0].Error)
		})
	}
}

func TestNode_AddChild(t *testing.T) {
	n := &Node{Label: "R"}
	n.AddChild(&Node{Label: TerminalLabel, Pos: 3, Len: 2})
	n.AddChild(&Node{Label: TerminalLabel, Pos: 5, Len: 4})
	n.AddChild(nil)

	assert.Equal(t, 3, n.Pos)
	assert.Equal(t, 6, n.Len)
	assert.Equal(t, 9, n.End())
	assert.Len(t, n.Children, 2)
}

func TestNode_String(t *testing.T) {
	root := Build(parse(t, listGrammar(), "a,b"))
	want := strings.Join([]string{
		"S 0+3",
		"  Item 0+1",
		`    <Terminal> 0+1 "a"`,
		`  <Terminal> 1+1 ","`,
		"  Item 2+1",
		`    <Terminal> 2+1 "b"`,
		"",
	}, "\n")
	assert.Equal(t, want, root.String())
}

func listFactories() Factories {
	return Factories{
		"S": func(n *Node, children []any) (any, error) {
			var items []string
			for _, c := range children {
				if s, ok := c.(string); ok {
					items = append(items, s)
				}
			}
			return items, nil
		},
		"Item": func(n *Node, children []any) (any, error) {
			return n.Text, nil
		},
		TerminalLabel: func(n *Node, children []any) (any, error) {
			return nil, nil
		},
	}
}

func TestFactories_Validate(t *testing.T) {
	g := listGrammar()

	t.Run("complete", func(t *testing.T) {
		assert.NoError(t, listFactories().Validate(g, false))
	})

	t.Run("missing error factory", func(t *testing.T) {
		err := listFactories().Validate(g, true)
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, []string{SyntaxErrorLabel}, cfg.Missing)
		assert.Empty(t, cfg.Extra)
	})

	t.Run("missing and extra", func(t *testing.T) {
		f := listFactories()
		delete(f, "Item")
		f["WS"] = f[TerminalLabel]
		f["Nope"] = f[TerminalLabel]

		err := f.Validate(g, false)
		var cfg *ConfigError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, []string{"Item"}, cfg.Missing)
		assert.Equal(t, []string{"Nope", "WS"}, cfg.Extra)
		assert.Equal(t, "tree: missing factories for Item; factories for unknown labels Nope, WS", err.Error())
	})
}

func TestBuildCST(t *testing.T) {
	g := listGrammar()

	t.Run("folds children first", func(t *testing.T) {
		v, err := BuildCST(parse(t, g, "ab, c,d"), listFactories(), false)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "c", "d"}, v)
	})

	t.Run("rejects errors unless allowed", func(t *testing.T) {
		_, err := BuildCST(parse(t, g, "ab;"), listFactories(), false)
		assert.ErrorIs(t, err, ErrSyntax)
	})

	t.Run("allowed errors need a factory", func(t *testing.T) {
		f := listFactories()
		f[SyntaxErrorLabel] = func(n *Node, children []any) (any, error) {
			return "!" + n.Text, nil
		}
		v, err := BuildCST(parse(t, g, "ab;"), f, true)
		require.NoError(t, err)
		assert.Equal(t, []string{"ab", "!;"}, v)
	})

	t.Run("factory errors are wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		f := listFactories()
		f["Item"] = func(n *Node, children []any) (any, error) { return nil, boom }
		_, err := BuildCST(parse(t, g, "a"), f, false)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "build Item at 0")
	})
}

func TestLineIndex(t *testing.T) {
	x := NewLineIndex("f.txt", "ab\ncd\n")

	tests := []struct {
		offset     int
		line, col  int
		normalized int
	}{
		{0, 1, 1, 0},
		{2, 1, 3, 2},
		{3, 2, 1, 3},
		{4, 2, 2, 4},
		{6, 3, 1, 6},
		{100, 3, 1, 6},
		{-4, 1, 1, 0},
	}
	for _, tt := range tests {
		p := x.Position(tt.offset)
		assert.Equal(t, tt.line, p.Line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, p.Column, "offset %d", tt.offset)
		assert.Equal(t, tt.normalized, p.Offset, "offset %d", tt.offset)
	}
	assert.Equal(t, 3, x.Lines())
	assert.Equal(t, "f.txt:2:2", x.Position(4).String())
	assert.Equal(t, "2:2", NewLineIndex("", "ab\ncd").Position(4).String())
}

func TestLineIndex_UTF16Column(t *testing.T) {
	x := NewLineIndex("", "x\n😀y")
	assert.Equal(t, 0, x.UTF16Column(2))
	assert.Equal(t, 2, x.UTF16Column(3))
	assert.Equal(t, 2, x.Position(3).Column)
}

func TestDiagnostics(t *testing.T) {
	g := peg.MustGrammar(peg.Rule{Name: "S", Clause: peg.Seq(peg.Text("a"), peg.Text("\n"), peg.Text("b"))})

	diags := Diagnostics(parse(t, g, "a\nXb"), "in.txt")
	require.Len(t, diags, 1)
	assert.Equal(t, peg.RecoveredInsertion, diags[0].Kind)
	assert.Equal(t, 2, diags[0].Start.Line)
	assert.Equal(t, 1, diags[0].Start.Column)
	assert.Equal(t, 2, diags[0].End.Column)
	assert.Equal(t, `in.txt:2:1: unexpected input "X"`, diags[0].String())

	failed := Diagnostics(parse(t, g, "a\nq"), "in.txt")
	require.Len(t, failed, 1)
	assert.Equal(t, peg.TotalFailure, failed[0].Kind)
}
