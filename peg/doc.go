// Package peg implements a memoizing Parsing Expression Grammar engine that
// handles left-recursive rules and recovers from syntax errors.
//
// # Overview
//
// A grammar is a set of named rules whose bodies are [Clause] graphs built
// from terminals (Text, Chars, Any, Empty) and combinators (Seq, First,
// OneOrMore, ZeroOrMore, Opt, FollowedBy, NotFollowedBy). Rules refer to
// each other by name through [Ref], so recursion never creates object
// cycles:
//
//	g, err := peg.NewGrammar(
//	    peg.Rule{Name: "E", Clause: peg.First(
//	        peg.Seq(peg.Ref("E"), peg.Text("+"), peg.Ref("N")),
//	        peg.Ref("N"),
//	    )},
//	    peg.Rule{Name: "N", Clause: peg.OneOrMore(peg.Chars(peg.Range('0', '9')))},
//	)
//
// # Parsing
//
// A [Parser] is created per input and parses in up to two phases:
//
//	┌─────────────┐   spans input   ┌─────────────┐
//	│  Discovery  │────────────────▶│ ParseResult │
//	└─────────────┘                 └─────────────┘
//	       │ mismatch or short             ▲
//	       ▼                               │
//	┌─────────────┐                        │
//	│  Recovery   │────────────────────────┘
//	└─────────────┘
//
// Discovery is plain packrat parsing. Only when it fails to span the whole
// input does Recovery run, re-using every cached result that cannot change
// and re-evaluating the rest with bounded error recovery enabled.
//
// # Left recursion
//
// Every (clause, position) pair owns one memo entry. An entry that is
// re-entered while it is still being evaluated has found left recursion: it
// seeds itself with a mismatch and re-evaluates its clause until the match
// stops growing. Bumping the per-position version between rounds makes
// dependent entries at that position recompute against the improved seed.
//
// # Recovery
//
// Recovered parse trees contain [KindSyntaxError] nodes. A syntax error of
// non-zero length covers input that was skipped; one of length zero stands
// for a grammar element that is missing at the end of the input. Missing
// elements are never synthesized in the middle of the input, so the tree
// always reflects what the user actually typed.
//
// Positions and lengths count runes, not bytes.
package peg
