package peg

// Repetition matches its subclause as many times as possible.
type Repetition struct {
	sub Clause
	min int
}

// OneOrMore returns a clause matching sub at least once.
func OneOrMore(sub Clause) *Repetition { return &Repetition{sub: sub, min: 1} }

// ZeroOrMore returns a clause matching sub any number of times.
func ZeroOrMore(sub Clause) *Repetition { return &Repetition{sub: sub} }

// Subclause returns the repeated clause.
func (c *Repetition) Subclause() Clause { return c.sub }

// Min returns the minimum number of repetitions, 0 or 1.
func (c *Repetition) Min() int { return c.min }

func (c *Repetition) String() string {
	op := "*"
	if c.min > 0 {
		op = "+"
	}
	return operand(c.sub, precPrimary) + op
}

func (c *Repetition) subclauses() []Clause { return []Clause{c.sub} }

func (c *Repetition) match(p *Parser, pos int, bound Clause) *MatchResult {
	var children []*MatchResult
	curr := pos
	matches := 0
	recovered := false
	for {
		if p.recovering() && bound != nil && matches >= c.min && p.canMatchNonzeroAt(bound, curr) {
			break
		}
		r := p.match(c.sub, curr, nil)
		if r.Matched() {
			// An iteration made only of deletions adds nothing once the
			// minimum is met.
			if r.Len == 0 && r.Errors > 0 && matches >= c.min {
				break
			}
			children = append(children, r)
			matches++
			if r.Len == 0 {
				break
			}
			curr = r.End()
			continue
		}
		if !p.recovering() || curr >= len(p.input) {
			break
		}
		skip, found, blocked := c.skipTo(p, curr, bound)
		if found {
			p.stats.recovered()
			children = append(children, newSyntaxError(curr, skip, nil))
			curr += skip
			recovered = true
			continue
		}
		if recovered && !blocked {
			children = append(children, newSyntaxError(curr, len(p.input)-curr, nil))
			curr = len(p.input)
		}
		break
	}
	if matches < c.min {
		return mismatchResult
	}
	m := newSpanningMatch(c, pos, children)
	if !p.recovering() && curr < len(p.input) {
		m.Complete = false
	}
	return m
}

// skipTo finds the smallest skip after which sub matches again. The
// search gives up when the bound clause shows up first, leaving that input
// to the enclosing sequence.
func (c *Repetition) skipTo(p *Parser, curr int, bound Clause) (skip int, found, blocked bool) {
	for skip = 1; curr+skip < len(p.input); skip++ {
		at := curr + skip
		if bound != nil && p.canMatchNonzeroAt(bound, at) {
			return 0, false, true
		}
		if p.canMatchNonzeroAt(c.sub, at) {
			return skip, true, false
		}
	}
	return 0, false, false
}
