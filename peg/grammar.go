package peg

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoRules is returned for a grammar without rules.
	ErrNoRules = errors.New("grammar has no rules")
	// ErrUnknownRule is returned when a rule name cannot be resolved.
	ErrUnknownRule = errors.New("unknown rule")
	// ErrDuplicateRule is returned when two rules share a name.
	ErrDuplicateRule = errors.New("duplicate rule")
	// ErrCyclicRule is returned for rules that are nothing but a chain of
	// references leading back to themselves, such as A <- B; B <- A.
	ErrCyclicRule = errors.New("cyclic rule")
)

// Rule is a named grammar rule.
type Rule struct {
	Name   string
	Clause Clause

	// Transparent rules are elided from derived trees; their content is
	// merged into the parent node.
	Transparent bool
}

// Grammar is a resolved rule table. It is immutable and may be shared by
// any number of parsers.
type Grammar struct {
	rules       map[string]Clause
	order       []string
	transparent map[string]bool
}

// NewGrammar builds a grammar from rules and checks that every rule
// reference resolves.
func NewGrammar(rules ...Rule) (*Grammar, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	g := &Grammar{
		rules:       make(map[string]Clause, len(rules)),
		transparent: make(map[string]bool),
	}
	for _, r := range rules {
		if _, dup := g.rules[r.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name)
		}
		if r.Clause == nil {
			return nil, fmt.Errorf("rule %s has no clause", r.Name)
		}
		g.rules[r.Name] = r.Clause
		g.order = append(g.order, r.Name)
		if r.Transparent {
			g.transparent[r.Name] = true
		}
	}
	if missing := g.unresolved(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRule, strings.Join(missing, ", "))
	}
	if cycles := RefCycles(g.rules, g.order); len(cycles) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrCyclicRule, strings.Join(cycles[0], " -> "))
	}
	return g, nil
}

// RefCycles returns the cycles formed by rules whose body is a bare
// reference to another rule. Each cycle starts and ends with the first of
// its rules in order. Such a rule would recurse without ever reaching a
// memoized clause. References to undefined rules end a chain.
func RefCycles(rules map[string]Clause, order []string) [][]string {
	var cycles [][]string
	reported := make(map[string]bool)
	for _, name := range order {
		if reported[name] {
			continue
		}
		path := []string{name}
		index := map[string]int{name: 0}
		c := rules[name]
		for {
			ref, ok := c.(*RuleRef)
			if !ok {
				break
			}
			if i, seen := index[ref.Name]; seen {
				if i == 0 {
					for _, n := range path {
						reported[n] = true
					}
					cycles = append(cycles, append(path, ref.Name))
				}
				break
			}
			if c, ok = rules[ref.Name]; !ok {
				break
			}
			index[ref.Name] = len(path)
			path = append(path, ref.Name)
		}
	}
	return cycles
}

// MustGrammar is like NewGrammar but panics on error. It is intended for
// grammars built in Go code at init time.
func MustGrammar(rules ...Rule) *Grammar {
	g, err := NewGrammar(rules...)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grammar) unresolved() []string {
	seen := make(map[string]bool)
	for _, name := range g.order {
		Walk(g.rules[name], func(c Clause) bool {
			if ref, ok := c.(*RuleRef); ok {
				if _, ok := g.rules[ref.Name]; !ok {
					seen[ref.Name] = true
				}
			}
			return true
		})
	}
	missing := make([]string, 0, len(seen))
	for name := range seen {
		missing = append(missing, name)
	}
	sort.Strings(missing)
	return missing
}

// Rule returns the clause of the named rule.
func (g *Grammar) Rule(name string) (Clause, bool) {
	c, ok := g.rules[name]
	return c, ok
}

// RuleNames returns the rule names in definition order.
func (g *Grammar) RuleNames() []string {
	return append([]string(nil), g.order...)
}

// IsTransparent reports whether the named rule is transparent.
func (g *Grammar) IsTransparent(name string) bool { return g.transparent[name] }

// String renders the grammar in the textual grammar notation.
func (g *Grammar) String() string {
	var sb strings.Builder
	for _, name := range g.order {
		if g.transparent[name] {
			sb.WriteByte('~')
		}
		fmt.Fprintf(&sb, "%s <- %s;\n", name, g.rules[name])
	}
	return sb.String()
}

// RuleRef refers to a rule by name. References are resolved on every
// match and are never memoized themselves, so growth of a left-recursive
// rule is visible through any number of references.
type RuleRef struct {
	Name string
}

// Ref returns a reference to the named rule.
func Ref(name string) *RuleRef { return &RuleRef{Name: name} }

func (c *RuleRef) String() string { return c.Name }

func (c *RuleRef) match(p *Parser, pos int, bound Clause) *MatchResult {
	body, ok := p.grammar.rules[c.Name]
	if !ok {
		panic(fmt.Sprintf("peg: unresolved rule %q", c.Name))
	}
	r := p.match(body, pos, bound)
	if !r.Matched() {
		return r
	}
	return newMatch(c, r.Pos, r.Len, r.Complete, r)
}

func (c *RuleRef) subclauses() []Clause { return nil }
