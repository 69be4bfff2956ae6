package engine

// EveryReaches reports whether every node of from is related by r to at least
// one node of to:
//
//	forall u . from(u) -> exists v . to(v) & r(u, v)
//
// Sets over other namespaces are first renamed into the source (from) and
// target (to) namespaces.
func (e *Engine) EveryReaches(from, to NodeSet, r Relation) (bool, error) {
	from, err := e.Rename(from, e.ns.Source)
	if err != nil {
		return false, err
	}
	to, err = e.Rename(to, e.ns.Target)
	if err != nil {
		return false, err
	}

	reached := e.space.AndExists(to.fn, r.fn, e.ns.Target)
	holds := e.space.Forall(e.space.Implies(from.fn, reached), e.ns.Source)
	return e.space.IsTautology(holds), nil
}

// Image returns the set of the targets of r reached from a node of s, over the
// target namespace.
func (e *Engine) Image(s NodeSet, r Relation) (NodeSet, error) {
	s, err := e.Rename(s, e.ns.Source)
	if err != nil {
		return NodeSet{}, err
	}
	return NodeSet{fn: e.space.AndExists(s.fn, r.fn, e.ns.Source), ns: e.ns.Target}, nil
}
