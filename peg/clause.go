package peg

import "strings"

// Clause is a node of a grammar's clause graph.
//
// Clauses are immutable once built and may be shared between rules and
// between parses. The concrete types are the terminals ([Literal],
// [CharSet], [AnyChar], [Nothing]), the combinators ([Sequence],
// [OrderedChoice], [Repetition], [Optional], [Lookahead]) and [RuleRef].
type Clause interface {
	// String renders the clause in grammar notation.
	String() string

	match(p *Parser, pos int, bound Clause) *MatchResult
	subclauses() []Clause
}

// Notation precedence levels, lowest binding first.
const (
	precChoice = iota
	precSequence
	precPrefix
	precPostfix
	precPrimary
)

func precedence(c Clause) int {
	switch c := c.(type) {
	case *OrderedChoice:
		if len(c.subs) > 1 {
			return precChoice
		}
		if len(c.subs) == 1 {
			return precedence(c.subs[0])
		}
	case *Sequence:
		if len(c.subs) > 1 {
			return precSequence
		}
		if len(c.subs) == 1 {
			return precedence(c.subs[0])
		}
	case *Lookahead:
		return precPrefix
	case *Repetition, *Optional:
		return precPostfix
	}
	return precPrimary
}

// operand renders sub, parenthesized if it binds looser than prec.
func operand(sub Clause, prec int) string {
	if precedence(sub) < prec {
		return "(" + sub.String() + ")"
	}
	return sub.String()
}

func joinClauses(subs []Clause, sep string, prec int) string {
	parts := make([]string, len(subs))
	for i, sub := range subs {
		parts[i] = operand(sub, prec)
	}
	return strings.Join(parts, sep)
}

// Walk calls fn for c and every clause reachable from it without following
// rule references. Shared subclauses are visited once. Walk stops
// descending below a clause for which fn returns false.
func Walk(c Clause, fn func(Clause) bool) {
	seen := make(map[Clause]bool)
	var walk func(Clause)
	walk = func(c Clause) {
		if seen[c] {
			return
		}
		seen[c] = true
		if !fn(c) {
			return
		}
		for _, sub := range c.subclauses() {
			walk(sub)
		}
	}
	walk(c)
}

// IsTerminal reports whether c consumes input directly rather than
// through subclauses.
func IsTerminal(c Clause) bool {
	switch c.(type) {
	case *Literal, *CharSet, *AnyChar, *Nothing:
		return true
	}
	return false
}
