package engine

import (
	"fmt"
	"math/bits"

	"github.com/sockomode/symrel/boolfn"
)

// ReferenceSize is the number of nodes of the reference graph.
const ReferenceSize = 32

// Domain is the set of node indices [0, Size), encoded on Width bits.
type Domain struct {
	Size  int
	Width int
}

// NewDomain returns the domain of the given size with the smallest width able
// to encode all of its nodes.
func NewDomain(size int) (Domain, error) {
	if size <= 0 {
		return Domain{}, fmt.Errorf("domain size must be positive, got %d", size)
	}
	width := bits.Len(uint(size - 1))
	if width == 0 {
		width = 1
	}
	return Domain{Size: size, Width: width}, nil
}

// Contains reports whether n is a node of the domain.
func (d Domain) Contains(n int) bool {
	return n >= 0 && n < d.Size
}

func (d Domain) check(n int) error {
	if !d.Contains(n) {
		return &DomainError{Value: n, Size: d.Size}
	}
	return nil
}

// Bits returns the binary representation of n, most significant bit first.
func (d Domain) Bits(n int) ([]bool, error) {
	if err := d.check(n); err != nil {
		return nil, err
	}
	b := make([]bool, d.Width)
	for i := range b {
		b[i] = n&(1<<(d.Width-1-i)) != 0
	}
	return b, nil
}

// Encode maps n to one literal per bit of ns. The polarity of bit i is
// positive iff bit i of n (most significant first) is set.
func (d Domain) Encode(ns boolfn.Namespace, n int) ([]boolfn.Literal, error) {
	if ns.Width() != d.Width {
		return nil, fmt.Errorf("namespace %s has width %d, the domain needs %d", ns, ns.Width(), d.Width)
	}
	b, err := d.Bits(n)
	if err != nil {
		return nil, err
	}
	lits := make([]boolfn.Literal, len(b))
	for i, set := range b {
		lits[i] = boolfn.Literal{Var: ns.Var(i), Positive: set}
	}
	return lits, nil
}

// Decode is the inverse of Encode.
func (d Domain) Decode(lits []boolfn.Literal) (int, error) {
	if len(lits) != d.Width {
		return 0, fmt.Errorf("expected %d literals, got %d", d.Width, len(lits))
	}
	n := 0
	for _, l := range lits {
		n <<= 1
		if l.Positive {
			n |= 1
		}
	}
	if err := d.check(n); err != nil {
		return 0, err
	}
	return n, nil
}
