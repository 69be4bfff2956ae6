package engine

import (
	"math/big"
)

// NodeInSet reports whether n is a member of s: the cofactor of s at the
// encoding of n is the tautology.
func (e *Engine) NodeInSet(s NodeSet, n int) (bool, error) {
	lits, err := e.domain.Encode(s.ns, n)
	if err != nil {
		return false, err
	}
	return e.space.IsTautology(e.space.Cofactor(s.fn, lits)), nil
}

// EdgeInRelation reports whether (a, b) is a pair of r.
func (e *Engine) EdgeInRelation(r Relation, a, b int) (bool, error) {
	lits, err := e.pair(a, b)
	if err != nil {
		return false, err
	}
	return e.space.IsTautology(e.space.Cofactor(r.fn, lits)), nil
}

// Members lists the nodes of s in increasing order.
func (e *Engine) Members(s NodeSet) ([]int, error) {
	var members []int
	for n := 0; n < e.domain.Size; n++ {
		ok, err := e.NodeInSet(s, n)
		if err != nil {
			return nil, err
		}
		if ok {
			members = append(members, n)
		}
	}
	return members, nil
}

// Pairs lists the pairs of r ordered by source then target.
func (e *Engine) Pairs(r Relation) ([]Edge, error) {
	var edges []Edge
	for a := 0; a < e.domain.Size; a++ {
		for b := 0; b < e.domain.Size; b++ {
			ok, err := e.EdgeInRelation(r, a, b)
			if err != nil {
				return nil, err
			}
			if ok {
				edges = append(edges, Edge{From: a, To: b})
			}
		}
	}
	return edges, nil
}

// Count returns the number of pairs of r.
func (e *Engine) Count(r Relation) *big.Int {
	return e.space.Satcount(r.fn, e.ns.Source, e.ns.Target)
}

// Equivalent reports whether two relations hold the same pairs.
func (e *Engine) Equivalent(a, b Relation) bool {
	return e.space.Equivalent(a.fn, b.fn)
}
