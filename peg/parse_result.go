package peg

import (
	"fmt"
	"strconv"
)

// ErrorKind classifies a syntax error in a finished parse.
type ErrorKind uint8

const (
	// TotalFailure means the top rule did not match at all; the root is a
	// single syntax error spanning the whole input.
	TotalFailure ErrorKind = iota
	// RecoveredInsertion is unexpected input that recovery skipped.
	RecoveredInsertion
	// RecoveredDeletion is a grammar element missing at the end of input.
	RecoveredDeletion
	// TrailingUnmatched is input left over after the top rule matched.
	TrailingUnmatched
)

func (k ErrorKind) String() string {
	switch k {
	case TotalFailure:
		return "total failure"
	case RecoveredInsertion:
		return "unexpected input"
	case RecoveredDeletion:
		return "missing element"
	case TrailingUnmatched:
		return "trailing input"
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// ParseResult is the outcome of parsing a whole input.
//
// Root and Unmatched together always span the input: Root is either a
// match starting at 0, optionally followed by Unmatched, or a single
// syntax error covering everything.
type ParseResult struct {
	Input   string
	Root    *MatchResult
	TopRule string

	// HasErrors reports whether any syntax error occurred.
	HasErrors bool

	// Unmatched covers input left over after the top rule matched.
	Unmatched *MatchResult

	// Furthest is the end of the furthest terminal match seen while
	// parsing, which locates the problem when the parse failed entirely.
	Furthest int

	grammar *Grammar
	runes   []rune
}

// Grammar returns the grammar the input was parsed with.
func (r *ParseResult) Grammar() *Grammar { return r.grammar }

// IsTransparent reports whether the named rule is transparent.
func (r *ParseResult) IsTransparent(rule string) bool { return r.grammar.IsTransparent(rule) }

// Len returns the input length in runes.
func (r *ParseResult) Len() int { return len(r.runes) }

// End returns the position where the parse ends, including any trailing
// unmatched input. It always equals Len.
func (r *ParseResult) End() int {
	if r.Unmatched != nil {
		return r.Unmatched.End()
	}
	return r.Root.End()
}

// TotalFailure reports whether the top rule failed to match.
func (r *ParseResult) TotalFailure() bool { return r.Root.IsSyntaxError() }

// Complete reports whether the root match is complete.
func (r *ParseResult) Complete() bool { return r.Root.Complete && r.Unmatched == nil }

// Text returns the input covered by m.
func (r *ParseResult) Text(m *MatchResult) string {
	return string(r.runes[m.Pos:m.End()])
}

// SyntaxErrors returns every syntax error in input order, including the
// trailing unmatched input.
func (r *ParseResult) SyntaxErrors() []*MatchResult {
	errs := r.Root.SyntaxErrors()
	if r.Unmatched != nil {
		errs = append(errs, r.Unmatched)
	}
	return errs
}

// ErrorCount returns the number of syntax errors.
func (r *ParseResult) ErrorCount() int {
	n := r.Root.Errors
	if r.Unmatched != nil {
		n++
	}
	return n
}

// Classify returns the kind of the syntax error e, which must belong to
// this result.
func (r *ParseResult) Classify(e *MatchResult) ErrorKind {
	switch {
	case e == r.Root:
		return TotalFailure
	case e == r.Unmatched:
		return TrailingUnmatched
	case e.Len == 0:
		return RecoveredDeletion
	}
	return RecoveredInsertion
}

// Describe returns a one-line message for the syntax error e.
func (r *ParseResult) Describe(e *MatchResult) string {
	switch r.Classify(e) {
	case TotalFailure:
		return fmt.Sprintf("no match for %s; input matched up to offset %d", r.TopRule, r.Furthest)
	case TrailingUnmatched:
		return "unexpected trailing input " + quoteSnippet(r.Text(e))
	case RecoveredDeletion:
		if e.Deleted != nil {
			return "missing " + e.Deleted.String()
		}
		return "missing input"
	}
	return "unexpected input " + quoteSnippet(r.Text(e))
}

func quoteSnippet(s string) string {
	const maxSnippet = 40
	if r := []rune(s); len(r) > maxSnippet {
		s = string(r[:maxSnippet]) + "..."
	}
	return strconv.Quote(s)
}
