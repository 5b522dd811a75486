package grammar

import (
	"github.com/dhamidi/squirrel/peg"
	"github.com/dhamidi/squirrel/tree"
)

// Parse compiles grammarText and parses input from topRule.
func Parse(grammarText, topRule, input string) (*peg.ParseResult, error) {
	g, err := Compile(grammarText)
	if err != nil {
		return nil, err
	}
	return peg.Parse(g, topRule, input)
}

// ParseAST is like Parse but returns the abstract syntax tree.
func ParseAST(grammarText, topRule, input string) (*tree.Node, error) {
	res, err := Parse(grammarText, topRule, input)
	if err != nil {
		return nil, err
	}
	return tree.Build(res), nil
}

// ParseCST is like Parse but folds the tree through factories. The
// factories are validated against the grammar before input is parsed.
func ParseCST(grammarText, topRule, input string, factories tree.Factories, allowErrors bool) (any, error) {
	g, err := Compile(grammarText)
	if err != nil {
		return nil, err
	}
	if err := factories.Validate(g, allowErrors); err != nil {
		return nil, err
	}
	res, err := peg.Parse(g, topRule, input)
	if err != nil {
		return nil, err
	}
	return tree.BuildCST(res, factories, allowErrors)
}
