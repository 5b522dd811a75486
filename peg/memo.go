package peg

type memoKey struct {
	clause Clause
	pos    int
}

// memoEntry caches the result of one clause at one position and runs the
// seed-and-grow loop when the clause turns out to be left-recursive.
type memoEntry struct {
	result        *MatchResult
	onStack       bool
	leftRecursive bool
	version       int
	inRecovery    bool
}

func (e *memoEntry) match(p *Parser, c Clause, pos int, bound Clause) *MatchResult {
	if e.onStack {
		if e.result == nil {
			e.leftRecursive = true
			e.result = mismatchResult
		}
		if e.leftRecursive && !e.result.Matched() {
			return lrPendingResult
		}
		return e.result
	}
	if e.reusable(p, pos) {
		p.stats.hit()
		return e.result
	}

	e.result = nil
	e.leftRecursive = false
	e.onStack = true
	for {
		r := c.match(p, pos, bound)
		if e.result != nil && r.length() <= e.result.length() {
			break
		}
		e.result = r
		if !e.leftRecursive {
			break
		}
		p.versions[pos]++
		p.stats.grow()
	}
	e.onStack = false

	e.version = p.versions[pos]
	e.inRecovery = p.phase == Recovery
	if e.leftRecursive {
		e.result = e.result.withLeftRecursion()
	}
	return e.result
}

// reusable reports whether the cached result is still valid. Results
// cached in the other phase survive only when nothing Recovery could do
// would change them.
func (e *memoEntry) reusable(p *Parser, pos int) bool {
	if e.result == nil || e.version != p.versions[pos] {
		return false
	}
	recovering := p.phase == Recovery
	if e.inRecovery == recovering {
		return true
	}
	r := e.result
	if !r.Matched() || !r.Complete || r.FromLeftRecursion || r.Errors > 0 {
		return false
	}
	if pos == 0 && recovering && r.End() != len(p.input) {
		return false
	}
	return true
}
