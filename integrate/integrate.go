// Package integrate advances body position and velocity from a
// previously-computed acceleration using a fixed time step, leapfrog-like
// kick-drift-kick update, then zeroes acceleration for the next step.
package integrate

import (
	"context"
	"math"

	"github.com/katalvlaran/nbody/body"
	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/vector"
)

// Config holds the integrator's fixed time step and non-finite-state
// handling policy.
type Config struct {
	Dt float64

	// HaltOnNonFinite, when true, makes Step return ErrNonFinite as soon as
	// a body's position or velocity becomes non-finite rather than zeroing
	// that body's acceleration and continuing.
	HaltOnNonFinite bool

	SchedulerConfig scheduler.Config
}

// Step advances every body in store by one Δt = cfg.Dt:
//
//	x ← x + (v + (Δt/2)·a)·Δt
//	v ← v + a·Δt
//	a ← 0
//
// Body chunks are partitioned and written by exactly one worker each, so no
// ordering between bodies within the step is required or provided.
func Step[P vector.Vec[P]](ctx context.Context, store *body.Store[P], cfg Config) error {
	bodies := store.Bodies()
	halfDt := cfg.Dt / 2

	return scheduler.ParallelFor(ctx, len(bodies), cfg.SchedulerConfig, func(_ context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			b := &bodies[i]
			b.X = b.X.Add(b.V.Add(b.A.Scale(halfDt)).Scale(cfg.Dt))
			b.V = b.V.Add(b.A.Scale(cfg.Dt))
			var zero P
			b.A = zero

			if cfg.HaltOnNonFinite && (!isFinite(b.X) || !isFinite(b.V)) {
				return ErrNonFinite
			}
		}
		return nil
	})
}

// ErrNonFinite is returned by Step when HaltOnNonFinite is set and a
// body's position or velocity becomes NaN or infinite.
var ErrNonFinite = nonFiniteError{}

type nonFiniteError struct{}

func (nonFiniteError) Error() string { return "integrate: non-finite position or velocity" }

func isFinite[P vector.Vec[P]](v P) bool {
	var zero P
	d := v.Sub(zero)
	n := d.InfNorm()
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}
