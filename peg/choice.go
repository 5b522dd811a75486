package peg

// OrderedChoice matches the first of its alternatives that succeeds.
type OrderedChoice struct {
	subs []Clause
}

// First returns a clause trying alternatives in order.
func First(alternatives ...Clause) *OrderedChoice {
	return &OrderedChoice{subs: alternatives}
}

// Subclauses returns the alternatives.
func (c *OrderedChoice) Subclauses() []Clause { return c.subs }

func (c *OrderedChoice) String() string {
	return joinClauses(c.subs, " / ", precChoice+1)
}

func (c *OrderedChoice) subclauses() []Clause { return c.subs }

func (c *OrderedChoice) match(p *Parser, pos int, bound Clause) *MatchResult {
	for i, sub := range c.subs {
		r := p.match(sub, pos, bound)
		if !r.Matched() {
			continue
		}
		if p.recovering() && r.Errors > 0 {
			r = c.bestAlternative(p, pos, bound, i, r)
		}
		return newMatch(c, pos, r.Len, r.Complete, r)
	}
	return mismatchResult
}

// bestAlternative compares a recovered match of alternative i with the
// alternatives after it. It stops at the first clean alternative that is
// at least as long as the best found so far.
func (c *OrderedChoice) bestAlternative(p *Parser, pos int, bound Clause, i int, best *MatchResult) *MatchResult {
	for _, sub := range c.subs[i+1:] {
		r := p.match(sub, pos, bound)
		if !r.Matched() {
			continue
		}
		if betterRecovery(r, best) {
			best = r
		}
		if r.Errors == 0 && r.Len >= best.Len {
			break
		}
	}
	return best
}

// betterRecovery ranks recovered matches: a low error rate beats a high
// one, then longer beats shorter, then fewer errors beat more.
func betterRecovery(a, b *MatchResult) bool {
	if lowA, lowB := lowErrorRate(a), lowErrorRate(b); lowA != lowB {
		return lowA
	}
	if a.Len != b.Len {
		return a.Len > b.Len
	}
	return a.Errors < b.Errors
}

func lowErrorRate(r *MatchResult) bool {
	if r.Errors == 0 {
		return true
	}
	if r.Len == 0 {
		return false
	}
	return float64(r.Errors)/float64(r.Len) < 0.5
}
