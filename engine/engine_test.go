package engine

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/sockomode/symrel/boolfn"
	"github.com/sockomode/symrel/graph"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	evenMembers  = []int{0, 2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24, 26, 28, 30}
	primeMembers = []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31}
)

func referenceEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewReference(append([]Option{WithLogger(testLogger)}, opts...)...)
	if err != nil {
		t.Fatalf("unable to create the reference engine: %v", err)
	}
	return e
}

// referenceEdge is the reference rule restricted to the generated pairs.
func referenceEdge() graph.EdgeFunc {
	return graph.Bounded(ReferenceSize, graph.Reference(), true)
}

func referenceRelation(t *testing.T, e *Engine) Relation {
	t.Helper()
	r, err := e.BuildRelationFunc(referenceEdge())
	if err != nil {
		t.Fatalf("unable to build the edge relation: %v", err)
	}
	return r
}

func TestNew(t *testing.T) {
	domain, _ := NewDomain(ReferenceSize)
	space, err := boolfn.New(domain.Width, []string{"x", "y", "z"})
	if err != nil {
		t.Fatalf("unable to create the space: %v", err)
	}
	x, _ := space.Namespace("x")
	y, _ := space.Namespace("y")
	z, _ := space.Namespace("z")

	tests := []struct {
		msg       string
		nss       Namespaces
		collision bool
	}{
		{msg: "disjoint namespaces", nss: Namespaces{Source: x, Target: y, Temp: z}},
		{msg: "source is target", nss: Namespaces{Source: x, Target: x, Temp: z}, collision: true},
		{msg: "temp is target", nss: Namespaces{Source: x, Target: y, Temp: y}, collision: true},
		{msg: "temp is source", nss: Namespaces{Source: x, Target: y, Temp: x}, collision: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			_, err := New(space, domain, tt.nss)
			var ce *NamespaceCollisionError
			if got := errors.As(err, &ce); got != tt.collision {
				t.Errorf("New error = %v, want collision %v", err, tt.collision)
			}
		})
	}

	if _, err := LookupNamespaces(space, "x", "y", "w"); err == nil {
		t.Errorf("LookupNamespaces with an undeclared namespace succeeded, want an error")
	}

	small, _ := NewDomain(4)
	if _, err := New(space, small, Namespaces{Source: x, Target: y, Temp: z}); err == nil {
		t.Errorf("New with a narrower domain succeeded, want an error")
	}
}

func TestConcurrentQueries(t *testing.T) {
	e := referenceEngine(t)
	r := referenceRelation(t, e)
	edge := referenceEdge()

	var wg sync.WaitGroup
	errs := make(chan error, ReferenceSize)
	for a := 0; a < ReferenceSize; a++ {
		a := a
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := 0; b < ReferenceSize; b++ {
				got, err := e.EdgeInRelation(r, a, b)
				if err != nil {
					errs <- err
					return
				}
				if got != edge(a, b) {
					errs <- errors.New("concurrent query disagrees with the edge rule")
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}
