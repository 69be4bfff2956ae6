package engine

import "fmt"

// Square returns R∘R: the pairs (a, b) for which some m satisfies R(a, m) and
// R(m, b). The intermediate node lives in the temporary namespace, disjoint
// from source and target, so neither renaming captures a variable.
func (e *Engine) Square(r Relation) (Relation, error) {
	// R(m, b) with m in temp.
	rt, err := e.space.Substitute(r.fn, e.ns.Source, e.ns.Temp)
	if err != nil {
		return Relation{}, fmt.Errorf("unable to rename the source of the relation: %w", err)
	}
	// R(a, m) with m in temp.
	rs, err := e.space.Substitute(r.fn, e.ns.Target, e.ns.Temp)
	if err != nil {
		return Relation{}, fmt.Errorf("unable to rename the target of the relation: %w", err)
	}

	return Relation{fn: e.space.AndExists(rs, rt, e.ns.Temp)}, nil
}
