package grammar

import "github.com/dhamidi/squirrel/peg"

// Labels of the meta-grammar rules that survive into the grammar AST.
const (
	ruleGrammar     = "Grammar"
	ruleRule        = "Rule"
	ruleTransparent = "Transparent"
	ruleName        = "Name"
	ruleChoice      = "Choice"
	ruleSequence    = "Sequence"
	rulePrefix      = "Prefix"
	ruleLookahead   = "Lookahead"
	rulePostfix     = "Postfix"
	ruleSuffix      = "Suffix"
	ruleEmpty       = "Empty"
	ruleGroup       = "Group"
	ruleLiteral     = "Literal"
	ruleFold        = "Fold"
	ruleCharLit     = "CharLit"
	ruleClass       = "Class"
	ruleNegate      = "Negate"
	ruleClassItem   = "ClassItem"
	ruleClassChar   = "ClassChar"
	ruleAny         = "Any"
)

// meta is the grammar of grammar files, written against the engine it
// describes:
//
//	Grammar     <- Sp Rule+ !.;
//	Rule        <- Transparent? Name Sp Arrow Choice Semi;
//	Transparent <- "~" Sp;
//	Choice      <- Sequence (Slash Sequence)*;
//	Sequence    <- Prefix+;
//	Prefix      <- (Lookahead Sp)? Postfix;
//	Lookahead   <- [&!];
//	Postfix     <- Primary (Suffix Sp)?;
//	Suffix      <- [*+?];
//	~Primary    <- Name Sp !Arrow / Empty / Group / Literal Sp
//	             / CharLit Sp / Class Sp / Any Sp;
//	Empty       <- "(" Sp ")" Sp;
//	Group       <- "(" Sp Choice ")" Sp;
//	Literal     <- '"' StrChar* '"' Fold?;
//	Fold        <- "i" ![A-Za-z0-9_];
//	CharLit     <- "'" ChrChar "'";
//	Class       <- "[" Negate? ClassItem* "]";
//	Negate      <- "^";
//	ClassItem   <- ClassChar "-" ClassChar / ClassChar;
//	ClassChar   <- "\\" . / [^\]\\];
//	Any         <- ".";
//	Name        <- [A-Za-z_] [A-Za-z0-9_]*;
//	~StrChar    <- "\\" . / [^"\\];
//	~ChrChar    <- "\\" . / [^'\\];
//	~Arrow      <- "<-" Sp;
//	~Slash      <- "/" Sp;
//	~Semi       <- ";" Sp;
//	~Sp         <- ([ \t\r\n]+ / "#" [^\n]*)*;
var meta = peg.MustGrammar(
	peg.Rule{Name: ruleGrammar, Clause: peg.Seq(peg.Ref("Sp"), peg.OneOrMore(peg.Ref(ruleRule)), peg.NotFollowedBy(peg.Any()))},
	peg.Rule{Name: ruleRule, Clause: peg.Seq(peg.Opt(peg.Ref(ruleTransparent)), peg.Ref(ruleName), peg.Ref("Sp"), peg.Ref("Arrow"), peg.Ref(ruleChoice), peg.Ref("Semi"))},
	peg.Rule{Name: ruleTransparent, Clause: peg.Seq(peg.Text("~"), peg.Ref("Sp"))},
	peg.Rule{Name: ruleChoice, Clause: peg.Seq(peg.Ref(ruleSequence), peg.ZeroOrMore(peg.Seq(peg.Ref("Slash"), peg.Ref(ruleSequence))))},
	peg.Rule{Name: ruleSequence, Clause: peg.OneOrMore(peg.Ref(rulePrefix))},
	peg.Rule{Name: rulePrefix, Clause: peg.Seq(peg.Opt(peg.Seq(peg.Ref(ruleLookahead), peg.Ref("Sp"))), peg.Ref(rulePostfix))},
	peg.Rule{Name: ruleLookahead, Clause: peg.OneOf("&!")},
	peg.Rule{Name: rulePostfix, Clause: peg.Seq(peg.Ref("Primary"), peg.Opt(peg.Seq(peg.Ref(ruleSuffix), peg.Ref("Sp"))))},
	peg.Rule{Name: ruleSuffix, Clause: peg.OneOf("*+?")},
	peg.Rule{Name: "Primary", Transparent: true, Clause: peg.First(
		peg.Seq(peg.Ref(ruleName), peg.Ref("Sp"), peg.NotFollowedBy(peg.Ref("Arrow"))),
		peg.Ref(ruleEmpty),
		peg.Ref(ruleGroup),
		peg.Seq(peg.Ref(ruleLiteral), peg.Ref("Sp")),
		peg.Seq(peg.Ref(ruleCharLit), peg.Ref("Sp")),
		peg.Seq(peg.Ref(ruleClass), peg.Ref("Sp")),
		peg.Seq(peg.Ref(ruleAny), peg.Ref("Sp")),
	)},
	peg.Rule{Name: ruleEmpty, Clause: peg.Seq(peg.Text("("), peg.Ref("Sp"), peg.Text(")"), peg.Ref("Sp"))},
	peg.Rule{Name: ruleGroup, Clause: peg.Seq(peg.Text("("), peg.Ref("Sp"), peg.Ref(ruleChoice), peg.Text(")"), peg.Ref("Sp"))},
	peg.Rule{Name: ruleLiteral, Clause: peg.Seq(peg.Text(`"`), peg.ZeroOrMore(peg.Ref("StrChar")), peg.Text(`"`), peg.Opt(peg.Ref(ruleFold)))},
	peg.Rule{Name: ruleFold, Clause: peg.Seq(peg.Text("i"), peg.NotFollowedBy(identChar))},
	peg.Rule{Name: ruleCharLit, Clause: peg.Seq(peg.Text("'"), peg.Ref("ChrChar"), peg.Text("'"))},
	peg.Rule{Name: ruleClass, Clause: peg.Seq(peg.Text("["), peg.Opt(peg.Ref(ruleNegate)), peg.ZeroOrMore(peg.Ref(ruleClassItem)), peg.Text("]"))},
	peg.Rule{Name: ruleNegate, Clause: peg.Text("^")},
	peg.Rule{Name: ruleClassItem, Clause: peg.First(peg.Seq(peg.Ref(ruleClassChar), peg.Text("-"), peg.Ref(ruleClassChar)), peg.Ref(ruleClassChar))},
	peg.Rule{Name: ruleClassChar, Clause: peg.First(peg.Seq(peg.Text(`\`), peg.Any()), peg.NotChars(peg.Single(']'), peg.Single('\\')))},
	peg.Rule{Name: ruleAny, Clause: peg.Text(".")},
	peg.Rule{Name: ruleName, Clause: peg.Seq(identStart, peg.ZeroOrMore(identChar))},
	peg.Rule{Name: "StrChar", Transparent: true, Clause: peg.First(peg.Seq(peg.Text(`\`), peg.Any()), peg.NotChars(peg.Single('"'), peg.Single('\\')))},
	peg.Rule{Name: "ChrChar", Transparent: true, Clause: peg.First(peg.Seq(peg.Text(`\`), peg.Any()), peg.NotChars(peg.Single('\''), peg.Single('\\')))},
	peg.Rule{Name: "Arrow", Transparent: true, Clause: peg.Seq(peg.Text("<-"), peg.Ref("Sp"))},
	peg.Rule{Name: "Slash", Transparent: true, Clause: peg.Seq(peg.Text("/"), peg.Ref("Sp"))},
	peg.Rule{Name: "Semi", Transparent: true, Clause: peg.Seq(peg.Text(";"), peg.Ref("Sp"))},
	peg.Rule{Name: "Sp", Transparent: true, Clause: peg.ZeroOrMore(peg.First(
		peg.OneOrMore(peg.OneOf(" \t\r\n")),
		peg.Seq(peg.Text("#"), peg.ZeroOrMore(peg.NotChars(peg.Single('\n')))),
	))},
)

var (
	identStart = peg.Chars(peg.Range('A', 'Z'), peg.Range('a', 'z'), peg.Single('_'))
	identChar  = peg.Chars(peg.Range('A', 'Z'), peg.Range('a', 'z'), peg.Range('0', '9'), peg.Single('_'))
)
