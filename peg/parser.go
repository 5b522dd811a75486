package peg

import "fmt"

// Phase is the parse pass a Parser is in.
type Phase uint8

const (
	// Discovery is plain memoized parsing without error recovery.
	Discovery Phase = iota
	// Recovery re-parses with bounded error recovery enabled.
	Recovery
)

func (ph Phase) String() string {
	if ph == Recovery {
		return "Recovery"
	}
	return "Discovery"
}

// Option configures a Parser.
type Option func(*Parser)

// WithStats records the parser's work in s.
func WithStats(s *Stats) Option {
	return func(p *Parser) {
		p.stats = s
	}
}

// Parser parses one input against a grammar. A Parser is not safe for
// concurrent use; create one per input.
type Parser struct {
	grammar  *Grammar
	text     string
	input    []rune
	memo     map[memoKey]*memoEntry
	versions []int
	phase    Phase
	furthest int
	stats    *Stats
}

// NewParser returns a parser for input.
func NewParser(g *Grammar, input string, opts ...Option) *Parser {
	p := &Parser{
		grammar: g,
		text:    input,
		input:   []rune(input),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses input starting at the named rule.
func Parse(g *Grammar, topRule, input string, opts ...Option) (*ParseResult, error) {
	return NewParser(g, input, opts...).Parse(topRule)
}

// Phase returns the phase the parser is in.
func (p *Parser) Phase() Phase { return p.phase }

func (p *Parser) reset() {
	p.memo = make(map[memoKey]*memoEntry)
	p.versions = make([]int, len(p.input)+1)
	p.phase = Discovery
	p.furthest = 0
}

// Parse matches the named rule against the whole input. Syntax errors do
// not produce an error; they are embedded in the result. The only error is
// an unknown top rule.
func (p *Parser) Parse(topRule string) (*ParseResult, error) {
	if _, ok := p.grammar.Rule(topRule); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, topRule)
	}
	p.reset()

	top := Ref(topRule)
	root := p.match(top, 0, nil)
	if !root.Matched() || root.Len < len(p.input) {
		p.phase = Recovery
		root = p.match(top, 0, nil)
	}

	res := &ParseResult{
		Input:    p.text,
		TopRule:  topRule,
		Furthest: p.furthest,
		grammar:  p.grammar,
		runes:    p.input,
	}
	switch {
	case !root.Matched():
		res.Root = newSyntaxError(0, len(p.input), nil)
	case root.Len < len(p.input):
		res.Root = root
		res.Unmatched = newSyntaxError(root.Len, len(p.input)-root.Len, nil)
	default:
		res.Root = root.withComplete()
	}
	res.HasErrors = res.Root.Errors > 0 || res.Unmatched != nil
	return res, nil
}

// match evaluates c at pos through the memo table. bound is the clause
// that follows c in an enclosing sequence; it is only supplied during
// Recovery.
func (p *Parser) match(c Clause, pos int, bound Clause) *MatchResult {
	if pos > len(p.input) {
		return mismatchResult
	}
	p.stats.attempt()
	if ref, ok := c.(*RuleRef); ok {
		return ref.match(p, pos, bound)
	}
	key := memoKey{clause: c, pos: pos}
	e := p.memo[key]
	if e == nil {
		e = &memoEntry{}
		p.memo[key] = e
	}
	return e.match(p, c, pos, bound)
}

// probe matches c at pos in the Discovery phase, so the answer reflects
// whether c matches cleanly without triggering nested recovery.
func (p *Parser) probe(c Clause, pos int) *MatchResult {
	saved := p.phase
	p.phase = Discovery
	r := p.match(c, pos, nil)
	p.phase = saved
	return r
}

// canMatchNonzeroAt reports whether c matches at least one rune at pos.
func (p *Parser) canMatchNonzeroAt(c Clause, pos int) bool {
	r := p.probe(c, pos)
	return r.Matched() && r.Len > 0
}

func (p *Parser) recovering() bool { return p.phase == Recovery }

func (p *Parser) terminal(c Clause, pos, length int) *MatchResult {
	if end := pos + length; end > p.furthest {
		p.furthest = end
	}
	return newMatch(c, pos, length, true)
}

// literal returns the literal behind c, following rule references.
func (p *Parser) literal(c Clause) (*Literal, bool) {
	for i := 0; i <= len(p.grammar.rules); i++ {
		switch cl := c.(type) {
		case *Literal:
			return cl, true
		case *RuleRef:
			body, ok := p.grammar.rules[cl.Name]
			if !ok {
				return nil, false
			}
			c = body
		default:
			return nil, false
		}
	}
	return nil, false
}
