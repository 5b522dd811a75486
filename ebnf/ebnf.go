// Package ebnf imports grammars written in the EBNF dialect of
// golang.org/x/exp/ebnf.
//
// EBNF alternatives are unordered while PEG choices are not: converted
// alternatives are tried in the order they are written, so a grammar that
// relies on longest match may need its alternatives reordered.
package ebnf

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/tliron/commonlog"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/squirrel/peg"
)

var log = commonlog.GetLogger("squirrel.ebnf")

// Load parses an EBNF grammar from a file.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()

	g, err := ebnf.Parse(filename, f)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// CompileFile loads and converts the EBNF grammar in filename.
func CompileFile(filename, start string) (*peg.Grammar, error) {
	g, err := Load(filename)
	if err != nil {
		return nil, err
	}
	return Convert(g, start)
}

// Convert verifies g from the start production and translates every
// production into a rule of the same name. The start rule comes first,
// the others follow in name order.
func Convert(g ebnf.Grammar, start string) (*peg.Grammar, error) {
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}

	names := make([]string, 0, len(g))
	for name := range g {
		if name != start {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	names = append([]string{start}, names...)

	rules := make([]peg.Rule, 0, len(names))
	for _, name := range names {
		c, err := convert(g[name].Expr)
		if err != nil {
			return nil, fmt.Errorf("production %s: %w", name, err)
		}
		rules = append(rules, peg.Rule{Name: name, Clause: c})
	}
	log.Debugf("converted %d productions from %s", len(rules), start)
	return peg.NewGrammar(rules...)
}

func convert(expr ebnf.Expression) (peg.Clause, error) {
	switch e := expr.(type) {
	case nil:
		return peg.Empty(), nil

	case *ebnf.Token:
		return peg.Text(e.String), nil

	case *ebnf.Range:
		lo, err := rangeEnd(e.Begin)
		if err != nil {
			return nil, err
		}
		hi, err := rangeEnd(e.End)
		if err != nil {
			return nil, err
		}
		return peg.Chars(peg.Range(lo, hi)), nil

	case ebnf.Sequence:
		subs, err := convertAll(e)
		if err != nil {
			return nil, err
		}
		return peg.Seq(subs...), nil

	case ebnf.Alternative:
		subs, err := convertAll(e)
		if err != nil {
			return nil, err
		}
		return peg.First(subs...), nil

	case *ebnf.Repetition:
		body, err := convert(e.Body)
		if err != nil {
			return nil, err
		}
		return peg.ZeroOrMore(body), nil

	case *ebnf.Option:
		body, err := convert(e.Body)
		if err != nil {
			return nil, err
		}
		return peg.Opt(body), nil

	case *ebnf.Group:
		return convert(e.Body)

	case *ebnf.Name:
		return peg.Ref(e.String), nil
	}
	return nil, fmt.Errorf("%s: unsupported expression %T", expr.Pos(), expr)
}

func convertAll(exprs []ebnf.Expression) ([]peg.Clause, error) {
	subs := make([]peg.Clause, len(exprs))
	for i, x := range exprs {
		c, err := convert(x)
		if err != nil {
			return nil, err
		}
		subs[i] = c
	}
	return subs, nil
}

func rangeEnd(tok *ebnf.Token) (rune, error) {
	r, size := utf8.DecodeRuneInString(tok.String)
	if size == 0 || size != len(tok.String) {
		return 0, fmt.Errorf("%s: range bound %q is not a single character", tok.Pos(), tok.String)
	}
	return r, nil
}
