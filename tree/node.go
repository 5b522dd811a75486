// Package tree derives syntax trees from parse results.
//
// An AST keeps only rule references, terminals and syntax errors; the
// combinator structure in between is flattened away, and nodes of
// transparent rules are replaced by their children. A CST is built from
// the AST by caller-supplied factories, one per node label.
package tree

import (
	"fmt"
	"strings"

	"github.com/dhamidi/squirrel/peg"
)

// Labels of AST nodes that do not stand for a rule.
const (
	TerminalLabel    = "<Terminal>"
	SyntaxErrorLabel = "<SyntaxError>"
)

// Node is a node of the abstract syntax tree. Positions count runes.
type Node struct {
	Label    string  // rule name, TerminalLabel or SyntaxErrorLabel
	Pos      int     // start offset
	Len      int     // length
	Text     string  // source text covered by the node
	Children []*Node // nil for terminals and errors
	Error    string  // message, non-empty for syntax errors

	// Result is the match the node was derived from.
	Result *peg.MatchResult
}

// IsError reports whether n is a syntax error.
func (n *Node) IsError() bool {
	return n.Label == SyntaxErrorLabel
}

// IsTerminal reports whether n is a terminal leaf.
func (n *Node) IsTerminal() bool {
	return n.Label == TerminalLabel
}

// End returns the offset just past the node.
func (n *Node) End() int { return n.Pos + n.Len }

// AddChild appends a child node and extends the span to cover it.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		return
	}
	if len(n.Children) == 0 && n.Len == 0 {
		n.Pos = child.Pos
	}
	n.Children = append(n.Children, child)
	if end := child.End(); end > n.End() {
		n.Len = end - n.Pos
	}
}

// Walk visits n and its descendants in preorder, skipping the children
// of nodes for which fn returns false.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Find returns every node labelled label, in preorder.
func (n *Node) Find(label string) []*Node {
	var found []*Node
	n.Walk(func(m *Node) bool {
		if m.Label == label {
			found = append(found, m)
		}
		return true
	})
	return found
}

// Errors returns the syntax error nodes below n.
func (n *Node) Errors() []*Node {
	return n.Find(SyntaxErrorLabel)
}

func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(sb, "%s %d+%d", n.Label, n.Pos, n.Len)
	switch {
	case n.IsError():
		fmt.Fprintf(sb, " %s", n.Error)
	case n.IsTerminal():
		fmt.Fprintf(sb, " %q", n.Text)
	}
	sb.WriteByte('\n')
	for _, child := range n.Children {
		child.write(sb, depth+1)
	}
}
