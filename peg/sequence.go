package peg

// Sequence matches its subclauses one after another.
type Sequence struct {
	subs []Clause
}

// Seq returns a clause matching subs in order.
func Seq(subs ...Clause) *Sequence {
	return &Sequence{subs: subs}
}

// Subclauses returns the elements of the sequence.
func (c *Sequence) Subclauses() []Clause { return c.subs }

func (c *Sequence) String() string {
	if len(c.subs) == 0 {
		return "()"
	}
	return joinClauses(c.subs, " ", precSequence+1)
}

func (c *Sequence) subclauses() []Clause { return c.subs }

func (c *Sequence) match(p *Parser, pos int, bound Clause) *MatchResult {
	children := make([]*MatchResult, 0, len(c.subs))
	curr := pos
	for i := 0; i < len(c.subs); i++ {
		r := p.match(c.subs[i], curr, c.boundAfter(p, i, bound))
		if r.Matched() {
			children = append(children, r)
			curr = r.End()
			continue
		}
		if !p.recovering() || r.Kind == KindLRPending || recoveredLeftRecursion(children) {
			return mismatchResult
		}
		rec, ok := c.recover(p, i, curr)
		if !ok {
			return mismatchResult
		}
		p.stats.recovered()
		children = append(children, rec.skipped...)
		if rec.resumed == nil {
			break
		}
		children = append(children, rec.resumed)
		curr = rec.resumed.End()
		i = rec.index
	}
	return newSpanningMatch(c, pos, children)
}

// boundAfter returns the clause that must not be consumed by element i.
func (c *Sequence) boundAfter(p *Parser, i int, outer Clause) Clause {
	if !p.recovering() {
		return nil
	}
	if i+1 < len(c.subs) {
		return c.subs[i+1]
	}
	return outer
}

// recoveredLeftRecursion reports whether an earlier element is a grown
// left-recursive result that already contains a recovery; recovering again
// after it would conflict with the recovery done while growing.
func recoveredLeftRecursion(children []*MatchResult) bool {
	for _, child := range children {
		if child.FromLeftRecursion && child.Errors > 0 {
			return true
		}
	}
	return false
}

type seqRecovery struct {
	skipped []*MatchResult // syntax errors for skipped input and missing elements
	resumed *MatchResult   // match of element index; nil when the sequence ends
	index   int
}

// recover searches for the cheapest way to resume after element i failed
// at curr: skip some input, or, at the end of the input only, treat some
// grammar elements as missing. Candidates are tried in increasing order of
// total skip.
func (c *Sequence) recover(p *Parser, i, curr int) (seqRecovery, bool) {
	maxInput := len(p.input) - curr
	maxGrammar := len(c.subs) - i
	for total := 1; total <= maxInput+maxGrammar; total++ {
		for inputSkip := 0; inputSkip <= total && inputSkip <= maxInput; inputSkip++ {
			grammarSkip := total - inputSkip
			if grammarSkip > maxGrammar {
				continue
			}
			// Missing elements may only be synthesized where nothing
			// visible follows them.
			if grammarSkip > 0 && (inputSkip > 0 || curr != len(p.input)) {
				continue
			}
			if inputSkip > 0 && !c.canAbsorb(p, i, curr, inputSkip) {
				continue
			}
			rec := seqRecovery{index: i + grammarSkip}
			if inputSkip > 0 {
				rec.skipped = append(rec.skipped, newSyntaxError(curr, inputSkip, nil))
			}
			for k := i; k < rec.index; k++ {
				rec.skipped = append(rec.skipped, newSyntaxError(curr, 0, c.subs[k]))
			}
			if rec.index == len(c.subs) {
				return rec, true
			}
			r := p.probe(c.subs[rec.index], curr+inputSkip)
			if !r.Matched() {
				continue
			}
			rec.resumed = r
			return rec, true
		}
	}
	return seqRecovery{}, false
}

// canAbsorb reports whether skip runes at curr may be treated as garbage
// in place of element i. A multi-rune literal is atomic: it may stand in
// for at most its own length of input, and never for input that already
// contains the literal of the element after it.
func (c *Sequence) canAbsorb(p *Parser, i, curr, skip int) bool {
	lit, ok := p.literal(c.subs[i])
	if !ok || lit.Len() <= 1 {
		return true
	}
	if skip > lit.Len() {
		return false
	}
	if i+1 < len(c.subs) {
		if next, ok := p.literal(c.subs[i+1]); ok && next.occursIn(p.input[curr:curr+skip]) {
			return false
		}
	}
	return true
}
