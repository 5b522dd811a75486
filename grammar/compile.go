// Package grammar compiles the textual grammar notation into clause
// graphs.
//
// A grammar file is a list of rules:
//
//	# comments run to the end of the line
//	Expr   <- Expr "+" Term / Term;
//	Term   <- [0-9]+ Sp;
//	~Sp    <- [ \t]*;
//
// A leading "~" marks a rule transparent. Expressions use "/" for ordered
// choice, juxtaposition for sequence, prefix "&" and "!" for lookahead and
// postfix "*", "+" and "?" for repetition and option. Primaries are rule
// names, "strings" (with an "i" suffix for case-insensitive matching),
// 'c'haracters, [character classes] with ranges and "^" negation, "." for
// any character, "()" for the empty match and parenthesized groups.
//
// Grammar files are themselves parsed with the error-recovering engine, so
// a malformed grammar reports every syntax error at once.
package grammar

import (
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/tree"
)

var log = commonlog.GetLogger("squirrel.grammar")

// Option configures Compile.
type Option func(*compiler)

// WithFilename sets the file name used in error positions.
func WithFilename(name string) Option {
	return func(c *compiler) {
		c.filename = name
	}
}

// Compile compiles grammar text. Syntax and configuration errors are
// returned as an ErrorList.
func Compile(text string, opts ...Option) (*peg.Grammar, error) {
	c := &compiler{
		defined: make(map[string]*tree.Node),
		flags:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.index = tree.NewLineIndex(c.filename, text)

	res, err := peg.Parse(meta, ruleGrammar, text)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	root := tree.Build(res)
	if len(root.Find(ruleRule)) == 0 && onlyDeletions(res) {
		c.fail(0, peg.ErrNoRules, "grammar has no rules")
		return nil, c.errs
	}
	if res.HasErrors {
		for _, d := range tree.Diagnostics(res, c.filename) {
			c.errs = append(c.errs, &Error{Pos: d.Start, Msg: d.Message})
		}
		return nil, c.errs
	}

	c.grammar(root)
	if err := c.errs.Err(); err != nil {
		c.errs.sort()
		return nil, err
	}
	g, err := peg.NewGrammar(c.rules...)
	if err != nil {
		return nil, fmt.Errorf("build grammar: %w", err)
	}
	log.Debugf("compiled %d rules from %q", len(c.rules), c.filename)
	return g, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(text string, opts ...Option) *peg.Grammar {
	g, err := Compile(text, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// CompileFile compiles the grammar stored in filename.
func CompileFile(filename string) (*peg.Grammar, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read grammar: %w", err)
	}
	return Compile(string(data), WithFilename(filename))
}

func onlyDeletions(res *peg.ParseResult) bool {
	for _, e := range res.SyntaxErrors() {
		if res.Classify(e) != peg.RecoveredDeletion {
			return false
		}
	}
	return true
}

type reference struct {
	name string
	pos  int
}

type compiler struct {
	filename string
	index    *tree.LineIndex
	rules    []peg.Rule
	defined  map[string]*tree.Node
	flags    map[string]bool // transparency of each defined rule
	refs     []reference
	errs     ErrorList
}

func (c *compiler) fail(pos int, sentinel error, format string, args ...any) {
	c.errs = append(c.errs, &Error{
		Pos: c.index.Position(pos),
		Msg: fmt.Sprintf(format, args...),
		err: sentinel,
	})
}

func (c *compiler) grammar(root *tree.Node) {
	for _, n := range named(root) {
		if n.Label == ruleRule {
			c.rule(n)
		}
	}
	for _, ref := range c.refs {
		if c.defined[ref.name] == nil {
			c.fail(ref.pos, peg.ErrUnknownRule, "undefined rule %s", ref.name)
		}
	}

	bodies := make(map[string]peg.Clause, len(c.rules))
	order := make([]string, len(c.rules))
	for i, r := range c.rules {
		bodies[r.Name] = r.Clause
		order[i] = r.Name
	}
	for _, cycle := range peg.RefCycles(bodies, order) {
		c.fail(c.defined[cycle[0]].Pos, peg.ErrCyclicRule, "rule %s refers only to itself: %s", cycle[0], strings.Join(cycle, " -> "))
	}
}

func (c *compiler) rule(n *tree.Node) {
	var name, body *tree.Node
	transparent := false
	for _, k := range named(n) {
		switch k.Label {
		case ruleTransparent:
			transparent = true
		case ruleName:
			name = k
		case ruleChoice:
			body = k
		}
	}

	if prev := c.defined[name.Text]; prev != nil {
		if c.flags[name.Text] != transparent {
			c.fail(name.Pos, peg.ErrDuplicateRule, "rule %s marked both transparent and non-transparent", name.Text)
		} else {
			first := c.index.Position(prev.Pos)
			c.fail(name.Pos, peg.ErrDuplicateRule, "duplicate rule %s, first defined at %d:%d", name.Text, first.Line, first.Column)
		}
		return
	}
	c.defined[name.Text] = name
	c.flags[name.Text] = transparent
	c.rules = append(c.rules, peg.Rule{
		Name:        name.Text,
		Clause:      c.expr(body),
		Transparent: transparent,
	})
}

func (c *compiler) expr(n *tree.Node) peg.Clause {
	kids := named(n)
	switch n.Label {
	case ruleChoice:
		if len(kids) == 1 {
			return c.expr(kids[0])
		}
		return peg.First(c.exprs(kids)...)
	case ruleSequence:
		if len(kids) == 1 {
			return c.expr(kids[0])
		}
		return peg.Seq(c.exprs(kids)...)
	case rulePrefix:
		sub := c.expr(kids[len(kids)-1])
		if len(kids) == 1 {
			return sub
		}
		if kids[0].Text == "&" {
			return peg.FollowedBy(sub)
		}
		return peg.NotFollowedBy(sub)
	case rulePostfix:
		sub := c.expr(kids[0])
		if len(kids) == 1 {
			return sub
		}
		switch kids[1].Text {
		case "*":
			return peg.ZeroOrMore(sub)
		case "+":
			return peg.OneOrMore(sub)
		}
		return peg.Opt(sub)
	case ruleGroup:
		return c.expr(kids[0])
	case ruleName:
		c.refs = append(c.refs, reference{name: n.Text, pos: n.Pos})
		return peg.Ref(n.Text)
	case ruleEmpty:
		return peg.Empty()
	case ruleAny:
		return peg.Any()
	case ruleLiteral:
		body := n.Text[1:strings.LastIndexByte(n.Text, '"')]
		if len(kids) > 0 && kids[0].Label == ruleFold {
			return peg.TextFold(unescape(body))
		}
		return peg.Text(unescape(body))
	case ruleCharLit:
		return peg.Text(unescape(n.Text[1 : len(n.Text)-1]))
	case ruleClass:
		return c.class(n, kids)
	}
	panic(fmt.Sprintf("grammar: unexpected node %s", n.Label))
}

func (c *compiler) exprs(nodes []*tree.Node) []peg.Clause {
	clauses := make([]peg.Clause, len(nodes))
	for i, n := range nodes {
		clauses[i] = c.expr(n)
	}
	return clauses
}

func (c *compiler) class(n *tree.Node, kids []*tree.Node) peg.Clause {
	negated := false
	var ranges []peg.CharRange
	for _, k := range kids {
		if k.Label == ruleNegate {
			negated = true
			continue
		}
		ends := named(k)
		lo := classRune(ends[0])
		hi := lo
		if len(ends) == 2 {
			hi = classRune(ends[1])
		}
		if lo > hi {
			c.fail(k.Pos, nil, "invalid character range %s", k.Text)
			continue
		}
		ranges = append(ranges, peg.Range(lo, hi))
	}
	if negated {
		return peg.NotChars(ranges...)
	}
	return peg.Chars(ranges...)
}

func classRune(n *tree.Node) rune {
	return []rune(unescape(n.Text))[0]
}

// named returns the children of n that stand for rules.
func named(n *tree.Node) []*tree.Node {
	var out []*tree.Node
	for _, k := range n.Children {
		if !k.IsTerminal() && !k.IsError() {
			out = append(out, k)
		}
	}
	return out
}

// unescape resolves backslash escapes. Unknown escapes stand for the
// escaped character itself.
func unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var sb strings.Builder
	rs := []rune(s)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		if r == '\\' && i+1 < len(rs) {
			i++
			switch r = rs[i]; r {
			case 'n':
				r = '\n'
			case 't':
				r = '\t'
			case 'r':
				r = '\r'
			case '0':
				r = 0
			}
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
