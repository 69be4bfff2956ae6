package graph

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/sockomode/symrel/ast"
)

type RuleError struct {
	Position lexer.Position
	Message  string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule error at %s: %s", e.Position.String(), e.Message)
}

func newRuleError(msg string, pos lexer.Position) *RuleError {
	return &RuleError{Position: pos, Message: msg}
}

// expression is an integer expression over the rule variables. env holds the
// value of each variable, in the order the variables were declared.
type expression interface {
	eval(env []int) int
}

type binOp struct {
	e1 expression
	e2 expression
	op string
}

type number int

type variable int

type condition struct {
	e1 expression
	e2 expression
	op string
}

type conjunction []condition

// predicate is a disjunction of conjunctions.
type predicate []conjunction

func (n number) eval(env []int) int {
	return int(n)
}

func (v variable) eval(env []int) int {
	return env[v]
}

func (bo binOp) eval(env []int) int {
	v1 := bo.e1.eval(env)
	v2 := bo.e2.eval(env)

	switch bo.op {
	case "+":
		return v1 + v2
	case "-":
		return v1 - v2
	case "*":
		return v1 * v2
	case "%":
		return mod(v1, v2)
	}

	return 0
}

func (c condition) eval(env []int) bool {
	v1 := c.e1.eval(env)
	v2 := c.e2.eval(env)

	switch c.op {
	case "=":
		return v1 == v2
	case "!=":
		return v1 != v2
	case ">":
		return v1 > v2
	case ">=":
		return v1 >= v2
	case "<":
		return v1 < v2
	case "<=":
		return v1 <= v2
	}

	return false
}

func (p predicate) eval(env []int) bool {
	for _, conj := range p {
		holds := true
		for _, c := range conj {
			if !c.eval(env) {
				holds = false
				break
			}
		}
		if holds {
			return true
		}
	}
	return false
}

type compiler struct {
	vars map[string]variable
}

func newCompiler(names ...string) *compiler {
	c := &compiler{vars: map[string]variable{}}
	for i, name := range names {
		c.vars[name] = variable(i)
	}
	return c
}

func (c *compiler) rule(r *ast.Rule) (predicate, error) {
	var p predicate
	for _, d := range r.Disjuncts {
		var conj conjunction
		for _, cond := range d.Conditions {
			e1, err := c.expr(cond.Left)
			if err != nil {
				return nil, err
			}
			e2, err := c.expr(cond.Right)
			if err != nil {
				return nil, err
			}
			conj = append(conj, condition{e1: e1, e2: e2, op: cond.Op})
		}
		p = append(p, conj)
	}
	return p, nil
}

func (c *compiler) expr(e *ast.Expr) (expression, error) {
	acc, err := c.term(e.Left)
	if err != nil {
		return nil, err
	}
	for _, ot := range e.Rest {
		t, err := c.term(ot.Term)
		if err != nil {
			return nil, err
		}
		acc = binOp{e1: acc, e2: t, op: ot.Op}
	}
	return acc, nil
}

func (c *compiler) term(t *ast.Term) (expression, error) {
	acc, err := c.factor(t.Left)
	if err != nil {
		return nil, err
	}
	for _, of := range t.Rest {
		f, err := c.factor(of.Factor)
		if err != nil {
			return nil, err
		}
		if n, ok := f.(number); ok && n == 0 && of.Op == "%" {
			return nil, newRuleError("modulo by zero", of.Factor.Pos)
		}
		acc = binOp{e1: acc, e2: f, op: of.Op}
	}
	return acc, nil
}

func (c *compiler) factor(f *ast.Factor) (expression, error) {
	switch {
	case f.Number != nil:
		return number(*f.Number), nil
	case f.Sub != nil:
		return c.expr(f.Sub)
	}

	v, ok := c.vars[f.Var]
	if !ok {
		names := make([]string, len(c.vars))
		for name, i := range c.vars {
			names[i] = name
		}
		return nil, newRuleError(fmt.Sprintf("unknown variable %q, expected one of %s", f.Var, strings.Join(names, ", ")), f.Pos)
	}
	return v, nil
}

func compile(src string, vars ...string) (predicate, error) {
	r, err := ast.ParseRule(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("unable to parse rule %q: %w", src, err)
	}
	return newCompiler(vars...).rule(r)
}

// CompileEdgeRule compiles a rule over the variables i (source) and j (target).
func CompileEdgeRule(src string) (EdgeFunc, error) {
	p, err := compile(src, "i", "j")
	if err != nil {
		return nil, err
	}
	return func(i, j int) bool {
		return p.eval([]int{i, j})
	}, nil
}

// CompileMembershipRule compiles a rule over the variable n.
func CompileMembershipRule(src string) (MemberFunc, error) {
	p, err := compile(src, "n")
	if err != nil {
		return nil, err
	}
	return func(n int) bool {
		return p.eval([]int{n})
	}, nil
}
