package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/squirrel/peg"
)

// ErrSyntax is returned by BuildCST when the parse has syntax errors and
// errors are not allowed.
var ErrSyntax = errors.New("input has syntax errors")

// Factory builds the CST value of node n from the values already built for
// its children.
type Factory func(n *Node, children []any) (any, error)

// Factories maps node labels to factories. A complete set has one entry
// for every non-transparent rule, one for TerminalLabel and, when syntax
// errors are allowed, one for SyntaxErrorLabel.
type Factories map[string]Factory

// ConfigError reports a factory set that does not fit a grammar.
type ConfigError struct {
	Missing []string
	Extra   []string
}

func (e *ConfigError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing factories for "+strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		parts = append(parts, "factories for unknown labels "+strings.Join(e.Extra, ", "))
	}
	return "tree: " + strings.Join(parts, "; ")
}

// Validate checks that f has exactly the factories needed for trees of g.
func (f Factories) Validate(g *peg.Grammar, allowErrors bool) error {
	want := map[string]bool{TerminalLabel: true}
	if allowErrors {
		want[SyntaxErrorLabel] = true
	}
	for _, name := range g.RuleNames() {
		if !g.IsTransparent(name) {
			want[name] = true
		}
	}

	e := &ConfigError{}
	for label := range want {
		if f[label] == nil {
			e.Missing = append(e.Missing, label)
		}
	}
	for label := range f {
		if !want[label] {
			e.Extra = append(e.Extra, label)
		}
	}
	if len(e.Missing) == 0 && len(e.Extra) == 0 {
		return nil
	}
	sort.Strings(e.Missing)
	sort.Strings(e.Extra)
	return e
}

// BuildCST validates f against the grammar of res and folds the AST of res
// through it, children first.
func BuildCST(res *peg.ParseResult, f Factories, allowErrors bool) (any, error) {
	if err := f.Validate(res.Grammar(), allowErrors); err != nil {
		return nil, err
	}
	if res.HasErrors && !allowErrors {
		return nil, fmt.Errorf("%w: %d errors", ErrSyntax, res.ErrorCount())
	}
	root := Build(res)
	if f[root.Label] == nil {
		return nil, &ConfigError{Missing: []string{root.Label}}
	}
	return fold(root, f)
}

func fold(n *Node, f Factories) (any, error) {
	var children []any
	for _, child := range n.Children {
		v, err := fold(child, f)
		if err != nil {
			return nil, err
		}
		children = append(children, v)
	}
	v, err := f[n.Label](n, children)
	if err != nil {
		return nil, fmt.Errorf("build %s at %d: %w", n.Label, n.Pos, err)
	}
	return v, nil
}
