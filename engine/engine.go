// Package engine answers reachability queries over a fixed-size directed graph
// whose node sets and edge relations are Boolean functions over binary
// encoded node indices.
//
// Multi-step reachability is computed by relational squaring: R, R², R⁴, ...
// until two consecutive relations are equivalent.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/sockomode/symrel/boolfn"
)

// DefaultMaxIterations bounds the number of squarings of Fixpoint.
const DefaultMaxIterations = 64

// Namespaces holds the three disjoint variable namespaces of the engine.
// Relations are over (Source, Target); Temp names the intermediate node while
// squaring.
type Namespaces struct {
	Source boolfn.Namespace
	Target boolfn.Namespace
	Temp   boolfn.Namespace
}

// LookupNamespaces resolves the three engine roles by name in s.
func LookupNamespaces(s *boolfn.Space, source, target, temp string) (Namespaces, error) {
	var nss Namespaces
	for _, r := range []struct {
		name string
		ns   *boolfn.Namespace
	}{{source, &nss.Source}, {target, &nss.Target}, {temp, &nss.Temp}} {
		ns, ok := s.Namespace(r.name)
		if !ok {
			return Namespaces{}, fmt.Errorf("namespace %q is not declared", r.name)
		}
		*r.ns = ns
	}
	return nss, nss.validate()
}

func (n Namespaces) validate() error {
	roles := []boolfn.Namespace{n.Source, n.Target, n.Temp}
	for i := range roles {
		for j := i + 1; j < len(roles); j++ {
			a, b := roles[i], roles[j]
			if a.Name() == b.Name() {
				return &NamespaceCollisionError{First: a.Name(), Second: b.Name()}
			}
			if !a.Disjoint(b) {
				return &NamespaceCollisionError{First: a.Name(), Second: b.Name()}
			}
		}
	}
	return nil
}

// Engine builds and queries node sets and relations. An Engine is immutable
// once built and may be shared by concurrent readers.
type Engine struct {
	space  *boolfn.Space
	domain Domain
	ns     Namespaces

	maxIterations int
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxIterations caps the number of squarings of Fixpoint. A cap of zero or
// less removes the bound.
func WithMaxIterations(n int) Option {
	return func(e *Engine) { e.maxIterations = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New returns an engine over the given space. Every namespace of nss must be
// declared in space with the width of domain.
func New(space *boolfn.Space, domain Domain, nss Namespaces, opts ...Option) (*Engine, error) {
	if err := nss.validate(); err != nil {
		return nil, err
	}
	for _, ns := range []boolfn.Namespace{nss.Source, nss.Target, nss.Temp} {
		if ns.Width() != domain.Width {
			return nil, fmt.Errorf("namespace %s has width %d, the domain needs %d", ns, ns.Width(), domain.Width)
		}
	}

	e := &Engine{
		space:         space,
		domain:        domain,
		ns:            nss,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e, nil
}

// NewReference returns the engine of the reference instance: 32 nodes encoded
// on 5 bits in the interleaved namespaces x (source), y (target) and z (temp).
func NewReference(opts ...Option) (*Engine, error) {
	domain, err := NewDomain(ReferenceSize)
	if err != nil {
		return nil, err
	}
	space, err := boolfn.New(domain.Width, []string{"x", "y", "z"})
	if err != nil {
		return nil, err
	}
	nss, err := LookupNamespaces(space, "x", "y", "z")
	if err != nil {
		return nil, err
	}
	return New(space, domain, nss, opts...)
}

func (e *Engine) Space() *boolfn.Space {
	return e.space
}

func (e *Engine) Domain() Domain {
	return e.domain
}

func (e *Engine) Namespaces() Namespaces {
	return e.ns
}
