// Package body holds the simulation's dense, cache-friendly body store: a
// flat array of (position, velocity, acceleration, mass) records. Bodies
// are indexed by slice position, which is their identity for the lifetime
// of a run; no body is inserted or removed once a Store is created.
package body

import (
	"errors"

	"github.com/katalvlaran/nbody/vector"
)

// ErrNonPositiveMass is returned by New when a body's mass is not strictly
// positive, violating the m > 0 invariant.
var ErrNonPositiveMass = errors.New("body: mass must be strictly positive")

// Body is one point mass: position X, velocity V, acceleration A, mass M.
type Body[P vector.Vec[P]] struct {
	X P
	V P
	A P
	M float64
}

// Store is the sole owner of a run's body memory: a contiguous, indexable
// sequence of Body records. Store itself performs no locking; the
// concurrency discipline (read-only shared access during tree build,
// disjoint mutable chunks during force evaluation and integration) is
// enforced by the caller via the scheduler package, not by Store.
type Store[P vector.Vec[P]] struct {
	bodies []Body[P]
}

// New validates and wraps bodies into a Store. It does not copy the slice;
// the caller must not retain another mutable reference to it.
func New[P vector.Vec[P]](bodies []Body[P]) (*Store[P], error) {
	for i := range bodies {
		if bodies[i].M <= 0 {
			return nil, ErrNonPositiveMass
		}
	}
	return &Store[P]{bodies: bodies}, nil
}

// Len returns the number of bodies in the store.
func (s *Store[P]) Len() int { return len(s.bodies) }

// Bodies returns the store's backing slice for direct, index-addressed
// read or write access. Callers performing concurrent writes must first
// partition this slice into disjoint index ranges, one per worker; Store
// does not enforce that discipline itself.
func (s *Store[P]) Bodies() []Body[P] { return s.bodies }

// Positions returns each body's position, in order. The returned copies do
// not alias Store's internal state.
func (s *Store[P]) Positions() []P {
	out := make([]P, len(s.bodies))
	for i := range s.bodies {
		out[i] = s.bodies[i].X
	}
	return out
}
