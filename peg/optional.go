package peg

// Optional matches its subclause or nothing. It never fails.
type Optional struct {
	sub Clause
}

// Opt returns a clause matching sub zero or one times.
func Opt(sub Clause) *Optional { return &Optional{sub: sub} }

// Subclause returns the optional clause.
func (c *Optional) Subclause() Clause { return c.sub }

func (c *Optional) String() string { return operand(c.sub, precPrimary) + "?" }

func (c *Optional) subclauses() []Clause { return []Clause{c.sub} }

func (c *Optional) match(p *Parser, pos int, bound Clause) *MatchResult {
	r := p.match(c.sub, pos, bound)
	if r.Matched() {
		return newMatch(c, pos, r.Len, r.Complete, r)
	}
	return newMatch(c, pos, 0, pos == len(p.input) || p.recovering())
}

// Lookahead tests whether its subclause matches without consuming input.
type Lookahead struct {
	sub     Clause
	negated bool
}

// FollowedBy returns a clause that succeeds where sub matches.
func FollowedBy(sub Clause) *Lookahead { return &Lookahead{sub: sub} }

// NotFollowedBy returns a clause that succeeds where sub does not match.
func NotFollowedBy(sub Clause) *Lookahead { return &Lookahead{sub: sub, negated: true} }

// Subclause returns the tested clause.
func (c *Lookahead) Subclause() Clause { return c.sub }

// Negated reports whether this is a negative lookahead.
func (c *Lookahead) Negated() bool { return c.negated }

func (c *Lookahead) String() string {
	op := "&"
	if c.negated {
		op = "!"
	}
	return op + operand(c.sub, precPrefix)
}

func (c *Lookahead) subclauses() []Clause { return []Clause{c.sub} }

func (c *Lookahead) match(p *Parser, pos int, _ Clause) *MatchResult {
	if p.probe(c.sub, pos).Matched() == c.negated {
		return mismatchResult
	}
	return newMatch(c, pos, 0, true)
}
