package engine

import "fmt"

// DomainError reports a node index outside of [0, Size).
type DomainError struct {
	Value int
	Size  int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("node %d is outside of the domain [0, %d)", e.Value, e.Size)
}

// EmptySetError reports an attempt to build a predicate from zero elements.
type EmptySetError struct {
	Namespace string
}

func (e *EmptySetError) Error() string {
	return fmt.Sprintf("cannot build a predicate over %s from an empty set", e.Namespace)
}

// NamespaceCollisionError reports two engine roles sharing a namespace or some
// of its variables.
type NamespaceCollisionError struct {
	First  string
	Second string
}

func (e *NamespaceCollisionError) Error() string {
	if e.First == e.Second {
		return fmt.Sprintf("namespace %s is used for more than one role", e.First)
	}
	return fmt.Sprintf("namespaces %s and %s share variables", e.First, e.Second)
}

// FixpointNotReachedError reports that squaring did not converge within the
// iteration cap.
type FixpointNotReachedError struct {
	Iterations int
}

func (e *FixpointNotReachedError) Error() string {
	return fmt.Sprintf("fixpoint not reached after %d squarings", e.Iterations)
}
