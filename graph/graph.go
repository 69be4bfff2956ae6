// Package graph supplies the edge predicates the relation engine materialises
// into Boolean functions. Any predicate over two node indices is a valid
// source.
package graph

// EdgeFunc reports whether there is an edge from node i to node j.
type EdgeFunc func(i, j int) bool

// MemberFunc reports whether node n belongs to a set.
type MemberFunc func(n int) bool

// Offsets returns the rule with an edge from i to (i+k) mod size for every
// offset k.
func Offsets(size int, offsets ...int) EdgeFunc {
	return func(i, j int) bool {
		for _, k := range offsets {
			if mod(i+k, size) == mod(j, size) {
				return true
			}
		}
		return false
	}
}

// Reference is the edge rule of the reference instance:
// (i+3) mod 32 == j or (i+8) mod 32 == j.
func Reference() EdgeFunc {
	return Offsets(32, 3, 8)
}

// Bounded restricts edge to the pairs a generator iterating over [0, size)
// visits. With excludeLast the last node is left out of both loops, which is
// how the reference graph was generated: no edge leaves or enters size-1.
func Bounded(size int, edge EdgeFunc, excludeLast bool) EdgeFunc {
	limit := size
	if excludeLast {
		limit = size - 1
	}
	return func(i, j int) bool {
		if i < 0 || j < 0 || i >= limit || j >= limit {
			return false
		}
		return edge(i, j)
	}
}

// Edges lists the pairs of [0, size) for which edge holds, ordered by source
// then target.
func Edges(size int, edge EdgeFunc) [][2]int {
	var edges [][2]int
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			if edge(i, j) {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// mod is the Euclidean remainder; a modulus of zero yields zero.
func mod(a, b int) int {
	if b == 0 {
		return 0
	}
	m := a % b
	if m < 0 {
		if b < 0 {
			m -= b
		} else {
			m += b
		}
	}
	return m
}
