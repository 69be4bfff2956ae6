package ast

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Rule is a predicate over node indices written as a disjunction of
// conjunctions of comparisons, e.g. `(i+3) % 32 = j | (i+8) % 32 = j`.
type Rule struct {
	Pos lexer.Position

	Disjuncts []*Conjunction `parser:"@@ ('|' @@)*"`
}

type Conjunction struct {
	Pos lexer.Position

	Conditions []*Condition `parser:"@@ ('&' @@)*"`
}

type Condition struct {
	Pos lexer.Position

	Left  *Expr  `parser:"@@"`
	Op    string `parser:"@('=' | '!=' | '<=' | '>=' | '<' | '>')"`
	Right *Expr  `parser:"@@"`
}

type Expr struct {
	Pos lexer.Position

	Left *Term     `parser:"@@"`
	Rest []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Op   string `parser:"@('+' | '-')"`
	Term *Term  `parser:"@@"`
}

type Term struct {
	Pos lexer.Position

	Left *Factor     `parser:"@@"`
	Rest []*OpFactor `parser:"@@*"`
}

type OpFactor struct {
	Op     string  `parser:"@('*' | '%')"`
	Factor *Factor `parser:"@@"`
}

type Factor struct {
	Pos lexer.Position

	Number *int   `parser:"  @Int"`
	Var    string `parser:"| @Ident"`
	Sub    *Expr  `parser:"| '(' @@ ')'"`
}

// Query is a point query against a named set or relation, e.g. `EVEN(14)` or
// `RR2(27, 6)`.
type Query struct {
	Pos lexer.Position

	Name string `parser:"@Ident"`
	Args []int  `parser:"'(' @Int (',' @Int)* ')'"`
}

type Queries struct {
	Pos lexer.Position

	Queries []*Query `parser:"@@*"`
}

var (
	lex = lexer.MustSimple([]lexer.Rule{
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`, Action: nil},
		{Name: "Int", Pattern: `[0-9]+`, Action: nil},
		{Name: "Oper", Pattern: `!=|<=|>=|[-+*%()=<>|&,]`, Action: nil},
		{Name: "whitespace", Pattern: `\s+`, Action: nil},
	})

	ruleParser  = participle.MustBuild(&Rule{}, participle.Lexer(lex))
	queryParser = participle.MustBuild(&Queries{}, participle.Lexer(lex))
)

func ParseRule(r io.Reader) (*Rule, error) {
	rule := &Rule{}
	err := ruleParser.Parse("", r, rule)
	if err != nil {
		return nil, err
	}
	return rule, nil
}

// ParseQueries parses a whitespace separated list of queries.
func ParseQueries(r io.Reader) ([]*Query, error) {
	qs := &Queries{}
	err := queryParser.Parse("", r, qs)
	if err != nil {
		return nil, err
	}
	return qs.Queries, nil
}
