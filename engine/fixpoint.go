package engine

// Fixpoint squares r until two consecutive relations are equivalent and
// returns the last one with the number of squarings performed, the final
// non-changing one included. It fails with a *FixpointNotReachedError when the
// iteration cap is exceeded.
func (e *Engine) Fixpoint(r Relation) (Relation, int, error) {
	current := r
	for i := 1; e.maxIterations <= 0 || i <= e.maxIterations; i++ {
		next, err := e.Square(current)
		if err != nil {
			return Relation{}, i, err
		}

		e.logger.Debug("squared relation",
			"iteration", i,
			"nodes", e.space.NodeCount(next.fn),
		)

		if e.space.Equivalent(next.fn, current.fn) {
			e.logger.Info("fixpoint reached", "squarings", i, "pairs", e.Count(current).String())
			return current, i, nil
		}
		current = next
	}

	return Relation{}, e.maxIterations, &FixpointNotReachedError{Iterations: e.maxIterations}
}
