package tree

import "github.com/dhamidi/squirrel/peg"

// Build derives the AST of a parse result.
//
// The root is always labelled with the top rule, even if that rule is
// transparent, and spans the whole input. A total failure yields a root
// whose only child is the error; trailing unmatched input becomes the
// root's last child.
func Build(res *peg.ParseResult) *Node {
	b := builder{res: res}
	root := &Node{Label: res.TopRule, Result: res.Root}
	if res.TotalFailure() {
		root.AddChild(b.errorNode(res.Root))
	} else {
		root.Len = res.Root.Len
		for _, child := range res.Root.Children {
			b.collect(root, child)
		}
	}
	if res.Unmatched != nil {
		root.AddChild(b.errorNode(res.Unmatched))
	}
	root.Len = res.Len()
	root.Text = res.Input
	return root
}

type builder struct {
	res *peg.ParseResult
}

// collect adds the AST nodes for m to parent.
func (b *builder) collect(parent *Node, m *peg.MatchResult) {
	if m.IsSyntaxError() {
		parent.AddChild(b.errorNode(m))
		return
	}
	switch c := m.Clause.(type) {
	case *peg.RuleRef:
		if b.res.IsTransparent(c.Name) {
			b.collectChildren(parent, m)
			return
		}
		n := &Node{Label: c.Name, Pos: m.Pos, Len: m.Len, Text: b.res.Text(m), Result: m}
		b.collectChildren(n, m)
		parent.AddChild(n)
	default:
		if peg.IsTerminal(c) {
			if m.Len > 0 {
				parent.AddChild(&Node{Label: TerminalLabel, Pos: m.Pos, Len: m.Len, Text: b.res.Text(m), Result: m})
			}
			return
		}
		b.collectChildren(parent, m)
	}
}

func (b *builder) collectChildren(parent *Node, m *peg.MatchResult) {
	for _, child := range m.Children {
		b.collect(parent, child)
	}
}

func (b *builder) errorNode(m *peg.MatchResult) *Node {
	return &Node{
		Label:  SyntaxErrorLabel,
		Pos:    m.Pos,
		Len:    m.Len,
		Text:   b.res.Text(m),
		Error:  b.res.Describe(m),
		Result: m,
	}
}
