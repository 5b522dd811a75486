package peg

import (
	"strconv"
	"strings"
	"unicode"
)

// Literal matches a fixed run of text.
type Literal struct {
	text []rune
	fold bool
}

// Text returns a clause matching s exactly.
func Text(s string) *Literal {
	return &Literal{text: []rune(s)}
}

// TextFold returns a clause matching s under Unicode case folding.
func TextFold(s string) *Literal {
	return &Literal{text: []rune(s), fold: true}
}

// Value returns the literal text.
func (c *Literal) Value() string { return string(c.text) }

// Len returns the length of the literal in runes.
func (c *Literal) Len() int { return len(c.text) }

// CaseInsensitive reports whether the literal matches under case folding.
func (c *Literal) CaseInsensitive() bool { return c.fold }

func (c *Literal) String() string {
	if len(c.text) == 1 && !c.fold {
		return strconv.QuoteRune(c.text[0])
	}
	s := strconv.Quote(string(c.text))
	if c.fold {
		s += "i"
	}
	return s
}

func (c *Literal) match(p *Parser, pos int, _ Clause) *MatchResult {
	if !c.matchesAt(p.input, pos) {
		return mismatchResult
	}
	return p.terminal(c, pos, len(c.text))
}

func (c *Literal) matchesAt(input []rune, pos int) bool {
	if pos+len(c.text) > len(input) {
		return false
	}
	for i, want := range c.text {
		got := input[pos+i]
		if got != want && !(c.fold && foldEqual(got, want)) {
			return false
		}
	}
	return true
}

func (c *Literal) subclauses() []Clause { return nil }

// occursIn reports whether the literal appears anywhere in span.
func (c *Literal) occursIn(span []rune) bool {
	if len(c.text) == 0 {
		return false
	}
	for i := 0; i+len(c.text) <= len(span); i++ {
		if c.matchesAt(span, i) {
			return true
		}
	}
	return false
}

func foldEqual(a, b rune) bool {
	for r := unicode.SimpleFold(a); r != a; r = unicode.SimpleFold(r) {
		if r == b {
			return true
		}
	}
	return false
}

// CharRange is an inclusive range of code points.
type CharRange struct {
	Lo, Hi rune
}

// Range returns the inclusive range lo..hi.
func Range(lo, hi rune) CharRange { return CharRange{Lo: lo, Hi: hi} }

// Single returns the range containing only r.
func Single(r rune) CharRange { return CharRange{Lo: r, Hi: r} }

// CharSet matches one code point that falls inside (or, when negated,
// outside) any of its ranges.
type CharSet struct {
	ranges  []CharRange
	negated bool
}

// Chars returns a clause matching any code point in ranges.
func Chars(ranges ...CharRange) *CharSet {
	return &CharSet{ranges: ranges}
}

// NotChars returns a clause matching any code point outside ranges.
func NotChars(ranges ...CharRange) *CharSet {
	return &CharSet{ranges: ranges, negated: true}
}

// OneOf returns a clause matching any code point of s.
func OneOf(s string) *CharSet {
	c := &CharSet{}
	for _, r := range s {
		c.ranges = append(c.ranges, Single(r))
	}
	return c
}

// Ranges returns the ranges of the set.
func (c *CharSet) Ranges() []CharRange { return c.ranges }

// Negated reports whether the set matches code points outside its ranges.
func (c *CharSet) Negated() bool { return c.negated }

// Contains reports whether r is matched by the set.
func (c *CharSet) Contains(r rune) bool {
	in := false
	for _, rng := range c.ranges {
		if r >= rng.Lo && r <= rng.Hi {
			in = true
			break
		}
	}
	return in != c.negated
}

func (c *CharSet) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negated {
		sb.WriteByte('^')
	}
	for _, rng := range c.ranges {
		sb.WriteString(escapeClassRune(rng.Lo))
		if rng.Hi != rng.Lo {
			sb.WriteByte('-')
			sb.WriteString(escapeClassRune(rng.Hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func escapeClassRune(r rune) string {
	switch r {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\\', ']', '[', '-', '^':
		return `\` + string(r)
	}
	return string(r)
}

func (c *CharSet) match(p *Parser, pos int, _ Clause) *MatchResult {
	if pos >= len(p.input) || !c.Contains(p.input[pos]) {
		return mismatchResult
	}
	return p.terminal(c, pos, 1)
}

func (c *CharSet) subclauses() []Clause { return nil }

// AnyChar matches any single code point.
type AnyChar struct{}

// Any returns a clause matching any single code point.
func Any() *AnyChar { return &AnyChar{} }

func (c *AnyChar) String() string { return "." }

func (c *AnyChar) match(p *Parser, pos int, _ Clause) *MatchResult {
	if pos >= len(p.input) {
		return mismatchResult
	}
	return p.terminal(c, pos, 1)
}

func (c *AnyChar) subclauses() []Clause { return nil }

// Nothing matches the empty string everywhere.
type Nothing struct{}

// Empty returns a clause that always matches without consuming input.
func Empty() *Nothing { return &Nothing{} }

func (c *Nothing) String() string { return "()" }

func (c *Nothing) match(p *Parser, pos int, _ Clause) *MatchResult {
	return p.terminal(c, pos, 0)
}

func (c *Nothing) subclauses() []Clause { return nil }
