package engine

import (
	"github.com/sockomode/symrel/boolfn"
)

// NodeSet is a set of nodes represented by a Boolean function over a single
// namespace.
type NodeSet struct {
	fn boolfn.Func
	ns boolfn.Namespace
}

func (s NodeSet) Func() boolfn.Func {
	return s.fn
}

func (s NodeSet) Namespace() boolfn.Namespace {
	return s.ns
}

// Relation is a set of (source, target) pairs represented by a Boolean
// function over the source and target namespaces.
type Relation struct {
	fn boolfn.Func
}

func (r Relation) Func() boolfn.Func {
	return r.fn
}

// Edge is a pair of node indices.
type Edge struct {
	From int
	To   int
}

// BuildSet returns the disjunction, over every member, of the conjunction of
// its encoding in ns.
func (e *Engine) BuildSet(ns boolfn.Namespace, members []int) (NodeSet, error) {
	if len(members) == 0 {
		return NodeSet{}, &EmptySetError{Namespace: ns.Name()}
	}

	acc := e.space.False()
	for _, n := range members {
		lits, err := e.domain.Encode(ns, n)
		if err != nil {
			return NodeSet{}, err
		}
		acc = e.space.Or(acc, e.space.Cube(lits))
	}

	return NodeSet{fn: acc, ns: ns}, nil
}

// BuildSetFunc builds the set of the nodes of the domain for which member
// holds.
func (e *Engine) BuildSetFunc(ns boolfn.Namespace, member func(n int) bool) (NodeSet, error) {
	var members []int
	for n := 0; n < e.domain.Size; n++ {
		if member(n) {
			members = append(members, n)
		}
	}
	return e.BuildSet(ns, members)
}

// EmptySet returns the set with no member, the constant false function.
func (e *Engine) EmptySet(ns boolfn.Namespace) NodeSet {
	return NodeSet{fn: e.space.False(), ns: ns}
}

// Rename moves s into namespace ns.
func (e *Engine) Rename(s NodeSet, ns boolfn.Namespace) (NodeSet, error) {
	fn, err := e.space.Substitute(s.fn, s.ns, ns)
	if err != nil {
		return NodeSet{}, err
	}
	return NodeSet{fn: fn, ns: ns}, nil
}

// BuildRelation returns the disjunction, over every edge (a, b), of the
// conjunction of the encodings of a in the source namespace and of b in the
// target namespace.
func (e *Engine) BuildRelation(edges []Edge) (Relation, error) {
	if len(edges) == 0 {
		return Relation{}, &EmptySetError{Namespace: e.ns.Source.Name() + "," + e.ns.Target.Name()}
	}

	acc := e.space.False()
	for _, edge := range edges {
		lits, err := e.pair(edge.From, edge.To)
		if err != nil {
			return Relation{}, err
		}
		acc = e.space.Or(acc, e.space.Cube(lits))
	}

	return Relation{fn: acc}, nil
}

// BuildRelationFunc builds the relation of every pair of nodes of the domain
// for which edge holds.
func (e *Engine) BuildRelationFunc(edge func(i, j int) bool) (Relation, error) {
	var edges []Edge
	for i := 0; i < e.domain.Size; i++ {
		for j := 0; j < e.domain.Size; j++ {
			if edge(i, j) {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}
	return e.BuildRelation(edges)
}

// EmptyRelation returns the relation with no pair.
func (e *Engine) EmptyRelation() Relation {
	return Relation{fn: e.space.False()}
}

// pair encodes a in the source namespace followed by b in the target one.
func (e *Engine) pair(a, b int) ([]boolfn.Literal, error) {
	src, err := e.domain.Encode(e.ns.Source, a)
	if err != nil {
		return nil, err
	}
	dst, err := e.domain.Encode(e.ns.Target, b)
	if err != nil {
		return nil, err
	}
	return append(src, dst...), nil
}
