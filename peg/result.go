package peg

import "fmt"

// ResultKind discriminates the outcomes of matching a clause.
type ResultKind uint8

const (
	// KindMatch is a structural match.
	KindMatch ResultKind = iota
	// KindSyntaxError is a recovered error leaf.
	KindSyntaxError
	// KindMismatch is a total failure to match.
	KindMismatch
	// KindLRPending is returned to re-entrant calls while a left-recursive
	// entry is still seeded with a mismatch.
	KindLRPending
)

func (k ResultKind) String() string {
	switch k {
	case KindMatch:
		return "Match"
	case KindSyntaxError:
		return "SyntaxError"
	case KindMismatch:
		return "Mismatch"
	case KindLRPending:
		return "LRPending"
	}
	return fmt.Sprintf("ResultKind(%d)", uint8(k))
}

// MatchResult is the outcome of matching a clause at a position.
type MatchResult struct {
	Kind   ResultKind
	Clause Clause // nil for syntax errors
	Pos    int
	Len    int

	// Complete is false for a Discovery result that stopped short of the
	// end of the input and could be extended by Recovery.
	Complete bool

	// FromLeftRecursion is set on results grown by a left-recursive entry.
	FromLeftRecursion bool

	// Errors counts syntax errors in this subtree, including this node.
	Errors int

	Children []*MatchResult

	// Deleted is the grammar element a zero-length syntax error stands in
	// for.
	Deleted Clause
}

var (
	mismatchResult  = &MatchResult{Kind: KindMismatch, Len: -1}
	lrPendingResult = &MatchResult{Kind: KindLRPending, Len: -1}
)

func newMatch(c Clause, pos, length int, complete bool, children ...*MatchResult) *MatchResult {
	m := &MatchResult{
		Kind:     KindMatch,
		Clause:   c,
		Pos:      pos,
		Len:      length,
		Complete: complete,
		Children: children,
	}
	for _, child := range children {
		m.Errors += child.Errors
	}
	return m
}

// newSpanningMatch builds a match covering pos through the end of its last
// child, complete only if every child is.
func newSpanningMatch(c Clause, pos int, children []*MatchResult) *MatchResult {
	end := pos
	complete := true
	for _, child := range children {
		end = child.End()
		complete = complete && child.Complete
	}
	return newMatch(c, pos, end-pos, complete, children...)
}

func newSyntaxError(pos, length int, deleted Clause) *MatchResult {
	return &MatchResult{
		Kind:     KindSyntaxError,
		Pos:      pos,
		Len:      length,
		Complete: true,
		Errors:   1,
		Deleted:  deleted,
	}
}

// Matched reports whether r is a match or a syntax error, that is whether
// it covers a span of the input.
func (r *MatchResult) Matched() bool {
	return r.Kind == KindMatch || r.Kind == KindSyntaxError
}

// IsSyntaxError reports whether r is a recovered error leaf.
func (r *MatchResult) IsSyntaxError() bool { return r.Kind == KindSyntaxError }

// IsDeletion reports whether r stands for a missing grammar element.
func (r *MatchResult) IsDeletion() bool {
	return r.Kind == KindSyntaxError && r.Len == 0
}

// End returns the position just past the match.
func (r *MatchResult) End() int { return r.Pos + r.Len }

// length is Len for matches and -1 for failures, so any match is longer
// than any failure.
func (r *MatchResult) length() int {
	if !r.Matched() {
		return -1
	}
	return r.Len
}

func (r *MatchResult) withLeftRecursion() *MatchResult {
	if !r.Matched() || r.FromLeftRecursion {
		return r
	}
	cp := *r
	cp.FromLeftRecursion = true
	return &cp
}

func (r *MatchResult) withComplete() *MatchResult {
	if r.Complete {
		return r
	}
	cp := *r
	cp.Complete = true
	return &cp
}

// Walk visits r and its descendants in preorder. Children of a node are
// skipped when fn returns false for it.
func (r *MatchResult) Walk(fn func(*MatchResult) bool) {
	if !fn(r) {
		return
	}
	for _, child := range r.Children {
		child.Walk(fn)
	}
}

// SyntaxErrors returns the syntax errors in r's subtree in input order.
func (r *MatchResult) SyntaxErrors() []*MatchResult {
	var errs []*MatchResult
	r.Walk(func(m *MatchResult) bool {
		if m.Errors == 0 {
			return false
		}
		if m.Kind == KindSyntaxError {
			errs = append(errs, m)
		}
		return true
	})
	return errs
}

func (r *MatchResult) String() string {
	switch r.Kind {
	case KindMismatch, KindLRPending:
		return r.Kind.String()
	case KindSyntaxError:
		if r.Deleted != nil {
			return fmt.Sprintf("SyntaxError(missing %s) %d+%d", r.Deleted, r.Pos, r.Len)
		}
		return fmt.Sprintf("SyntaxError %d+%d", r.Pos, r.Len)
	}
	return fmt.Sprintf("%s %d+%d", r.Clause, r.Pos, r.Len)
}
