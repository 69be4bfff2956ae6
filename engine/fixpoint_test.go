package engine

import (
	"errors"
	"testing"
)

func TestFixpoint(t *testing.T) {
	e := referenceEngine(t)
	r := referenceRelation(t, e)

	f, squarings, err := e.Fixpoint(r)
	if err != nil {
		t.Fatalf("unable to reach the fixpoint: %v", err)
	}
	if squarings < 2 || squarings > 11 {
		t.Errorf("fixpoint took %d squarings, want between 2 and 11", squarings)
	}

	sq, err := e.Square(f)
	if err != nil {
		t.Fatalf("unable to square the fixpoint: %v", err)
	}
	if !e.Equivalent(sq, f) {
		t.Errorf("square(F) is not equivalent to F")
	}

	// Node 31 has no edge, every other pair is eventually connected.
	if got := e.Count(f).Int64(); got != 31*31 {
		t.Errorf("Count(F) = %d, want %d", got, 31*31)
	}
	for _, tt := range []struct {
		a, b int
		want bool
	}{{27, 6, true}, {16, 20, true}, {31, 0, false}, {0, 31, false}} {
		got, _ := e.EdgeInRelation(f, tt.a, tt.b)
		if got != tt.want {
			t.Errorf("F(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestFixpointFromSquare(t *testing.T) {
	e := referenceEngine(t)
	r2, err := e.Square(referenceRelation(t, e))
	if err != nil {
		t.Fatalf("unable to square: %v", err)
	}

	f, _, err := e.Fixpoint(r2)
	if err != nil {
		t.Fatalf("unable to reach the fixpoint: %v", err)
	}
	if got, _ := e.EdgeInRelation(f, 27, 6); !got {
		t.Errorf("RR2star(27, 6) = false, want true")
	}
}

func TestFixpointIterationCap(t *testing.T) {
	tests := []struct {
		msg  string
		cap  int
		want bool // reached
	}{
		{msg: "cap of one", cap: 1, want: false},
		{msg: "default cap", cap: DefaultMaxIterations, want: true},
		{msg: "unbounded", cap: 0, want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.msg, func(t *testing.T) {
			e := referenceEngine(t, WithMaxIterations(tt.cap))
			_, _, err := e.Fixpoint(referenceRelation(t, e))

			var fe *FixpointNotReachedError
			if tt.want {
				if err != nil {
					t.Errorf("Fixpoint error = %v, want none", err)
				}
				return
			}
			if !errors.As(err, &fe) || fe.Iterations != tt.cap {
				t.Errorf("Fixpoint error = %v, want a *FixpointNotReachedError after %d", err, tt.cap)
			}
		})
	}
}

func TestFixpointEmpty(t *testing.T) {
	e := referenceEngine(t)
	f, squarings, err := e.Fixpoint(e.EmptyRelation())
	if err != nil || squarings != 1 {
		t.Fatalf("Fixpoint(empty) = %d squarings, %v, want 1 and no error", squarings, err)
	}
	if !e.Equivalent(f, e.EmptyRelation()) {
		t.Errorf("fixpoint of the empty relation is not empty")
	}
}
