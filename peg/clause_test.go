package peg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClause_String(t *testing.T) {
	tests := []struct {
		clause Clause
		want   string
	}{
		{Text("a"), `'a'`},
		{Text("ab"), `"ab"`},
		{TextFold("ab"), `"ab"i`},
		{TextFold("a"), `"a"i`},
		{Text(`"q"`), `"\"q\""`},
		{Chars(Range('0', '9'), Single('_')), `[0-9_]`},
		{NotChars(Single(']'), Single('\n')), `[^\]\n]`},
		{Any(), `.`},
		{Empty(), `()`},
		{Seq(), `()`},
		{Seq(Text("a"), Ref("B")), `'a' B`},
		{First(Seq(Text("a"), Ref("B")), ZeroOrMore(Chars(Range('0', '9')))), `'a' B / [0-9]*`},
		{Opt(Seq(Text("a"), Text("b"))), `('a' 'b')?`},
		{OneOrMore(First(Ref("A"), Ref("B"))), `(A / B)+`},
		{Seq(First(Ref("A"), Ref("B")), Ref("C")), `(A / B) C`},
		{NotFollowedBy(Any()), `!.`},
		{FollowedBy(Seq(Ref("A"), Ref("B"))), `&(A B)`},
		{FollowedBy(ZeroOrMore(Ref("A"))), `&A*`},
		{OneOrMore(Seq(Ref("A"))), `A+`},
		{Seq(First(Ref("A"))), `A`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.clause.String())
		})
	}
}

func TestCharSet_Contains(t *testing.T) {
	digits := Chars(Range('0', '9'))
	assert.True(t, digits.Contains('5'))
	assert.False(t, digits.Contains('a'))

	notDigits := NotChars(Range('0', '9'))
	assert.False(t, notDigits.Contains('5'))
	assert.True(t, notDigits.Contains('a'))
	assert.True(t, notDigits.Negated())

	vowels := OneOf("aeiou")
	assert.Len(t, vowels.Ranges(), 5)
	assert.True(t, vowels.Contains('e'))
	assert.False(t, vowels.Contains('y'))
}

func TestLiteral_Accessors(t *testing.T) {
	l := TextFold("Straße")
	assert.Equal(t, "Straße", l.Value())
	assert.Equal(t, 6, l.Len())
	assert.True(t, l.CaseInsensitive())
	assert.False(t, Text("x").CaseInsensitive())
}

func TestLiteral_OccursInFoldsLikeMatch(t *testing.T) {
	tests := []struct {
		name string
		lit  *Literal
		span string
		want bool
		at   int // rune offset of the occurrence
	}{
		{name: "exact", lit: Text("ab"), span: "xaby", want: true, at: 1},
		{name: "exact is case sensitive", lit: Text("ab"), span: "xAby", want: false},
		{name: "long s folds to s", lit: TextFold("st"), span: "xſt", want: true, at: 1},
		{name: "kelvin sign folds to k", lit: TextFold("k"), span: "\u212A", want: true},
		{name: "span shorter than literal", lit: TextFold("ab"), span: "a", want: false},
		{name: "empty literal", lit: Text(""), span: "abc", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			span := []rune(tt.span)
			assert.Equal(t, tt.want, tt.lit.occursIn(span))
			if tt.want {
				assert.True(t, tt.lit.matchesAt(span, tt.at))
			}
		})
	}
}

func TestWalk(t *testing.T) {
	shared := Text("x")
	root := Seq(shared, First(shared, Ref("R")), Opt(NotFollowedBy(Any())))

	var visited []string
	Walk(root, func(c Clause) bool {
		visited = append(visited, c.String())
		return true
	})
	assert.Equal(t, []string{
		root.String(), `'x'`, `'x' / R`, `R`, `(!.)?`, `!.`, `.`,
	}, visited)

	var top []string
	Walk(root, func(c Clause) bool {
		top = append(top, c.String())
		return c == root
	})
	assert.Len(t, top, 4)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(Text("a")))
	assert.True(t, IsTerminal(Any()))
	assert.True(t, IsTerminal(Empty()))
	assert.True(t, IsTerminal(OneOf("ab")))
	assert.False(t, IsTerminal(Ref("A")))
	assert.False(t, IsTerminal(Seq(Text("a"))))
}

func TestNewGrammar(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g, err := NewGrammar(
			Rule{Name: "S", Clause: Seq(Ref("A"), Ref("WS"))},
			Rule{Name: "A", Clause: Text("a")},
			Rule{Name: "WS", Clause: ZeroOrMore(Text(" ")), Transparent: true},
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"S", "A", "WS"}, g.RuleNames())
		assert.True(t, g.IsTransparent("WS"))
		assert.False(t, g.IsTransparent("A"))
		_, ok := g.Rule("A")
		assert.True(t, ok)
		assert.Equal(t, "S <- A WS;\nA <- 'a';\n~WS <- ' '*;\n", g.String())
	})

	t.Run("no rules", func(t *testing.T) {
		_, err := NewGrammar()
		assert.ErrorIs(t, err, ErrNoRules)
	})

	t.Run("duplicate", func(t *testing.T) {
		_, err := NewGrammar(
			Rule{Name: "S", Clause: Text("a")},
			Rule{Name: "S", Clause: Text("b")},
		)
		assert.ErrorIs(t, err, ErrDuplicateRule)
	})

	t.Run("unresolved", func(t *testing.T) {
		_, err := NewGrammar(Rule{Name: "S", Clause: Seq(Ref("B"), Ref("A"), Ref("B"))})
		require.ErrorIs(t, err, ErrUnknownRule)
		assert.Contains(t, err.Error(), "A, B")
	})

	t.Run("reference cycle", func(t *testing.T) {
		_, err := NewGrammar(
			Rule{Name: "S", Clause: Seq(Ref("A"), Text("x"))},
			Rule{Name: "A", Clause: Ref("B")},
			Rule{Name: "B", Clause: Ref("A")},
		)
		require.ErrorIs(t, err, ErrCyclicRule)
		assert.Contains(t, err.Error(), "A -> B -> A")

		_, err = NewGrammar(Rule{Name: "A", Clause: Ref("A")})
		assert.ErrorIs(t, err, ErrCyclicRule)
	})

	t.Run("left recursion through a combinator", func(t *testing.T) {
		_, err := NewGrammar(
			Rule{Name: "A", Clause: First(Ref("B"), Text("x"))},
			Rule{Name: "B", Clause: Ref("A")},
		)
		assert.NoError(t, err)
	})

	t.Run("nil clause", func(t *testing.T) {
		_, err := NewGrammar(Rule{Name: "S"})
		assert.Error(t, err)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustGrammar() })
	})
}

func TestRefCycles(t *testing.T) {
	rules := map[string]Clause{
		"X": Ref("A"),
		"A": Ref("B"),
		"B": Ref("A"),
		"C": Ref("C"),
		"D": Ref("Missing"),
		"E": Opt(Ref("E")),
	}
	cycles := RefCycles(rules, []string{"X", "A", "B", "C", "D", "E"})
	assert.Equal(t, [][]string{{"A", "B", "A"}, {"C", "C"}}, cycles)
}

func TestMatchResult_SyntaxErrorsInOrder(t *testing.T) {
	a := newSyntaxError(1, 1, nil)
	b := newSyntaxError(3, 0, Text("c"))
	clean := newMatch(Text("x"), 0, 1, true)
	root := newMatch(Ref("S"), 0, 3, true, clean, a, newMatch(Seq(), 2, 1, true, b))

	assert.Equal(t, 2, root.Errors)
	assert.Equal(t, []*MatchResult{a, b}, root.SyntaxErrors())
	assert.Equal(t, "SyntaxError(missing 'c') 3+0", b.String())
	assert.Equal(t, "Mismatch", mismatchResult.String())
}
