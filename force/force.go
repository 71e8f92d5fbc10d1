// Package force evaluates, for every body, the Barnes–Hut approximation of
// gravitational acceleration by traversing a built tree with the
// multipole-acceptance criterion (MAC). The evaluator is read-only with
// respect to the tree and has no state of its own beyond the (tree, bodies,
// θ, ε²) it is called with.
package force

import (
	"context"
	"math"

	"github.com/katalvlaran/nbody/body"
	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/tree"
	"github.com/katalvlaran/nbody/vector"
)

// Config holds the accuracy/performance knobs the evaluator runs under. G
// is folded into the mass unit and is always 1, per the simulation's
// dimensionless unit convention.
type Config struct {
	// Theta is the Barnes-Hut opening parameter. Theta == 0 disables the
	// MAC entirely: every cell is opened down to its leaves, which is the
	// exact softened O(N²) sum.
	Theta float64

	// Softening2 is ε², added to r² before the 1/r³ falloff so the force
	// stays finite as r → 0.
	Softening2 float64

	SchedulerConfig scheduler.Config
}

// Evaluate sets every body's A field to its Barnes-Hut approximated
// acceleration under cfg, traversing root once per body in parallel:
// each worker owns a disjoint, contiguous range of body indices and writes
// only to that range's A fields, so no acceleration is ever written by two
// workers.
func Evaluate[P vector.Vec[P]](ctx context.Context, root *tree.Node[P], store *body.Store[P], cfg Config) error {
	theta2 := cfg.Theta * cfg.Theta
	bodies := store.Bodies()

	return scheduler.ParallelFor(ctx, len(bodies), cfg.SchedulerConfig, func(_ context.Context, lo, hi int) error {
		for i := lo; i < hi; i++ {
			bodies[i].A = accelerationAt(root, bodies[i].X, theta2, cfg.Softening2)
		}
		return nil
	})
}

// accelerationAt returns the accumulated acceleration on a point mass at
// pos from every child of root, recursing into children the MAC rejects.
func accelerationAt[P vector.Vec[P]](root *tree.Node[P], pos P, theta2, softening2 float64) P {
	var acc P
	if !root.IsInternal() {
		return acc
	}
	for _, c := range root.Children() {
		if c.IsEmpty() {
			continue
		}

		var com P
		var mass float64
		if c.IsLeaf() {
			if c.Point() == pos {
				continue // self-interaction exclusion
			}
			com, mass = c.Point(), c.Mass()
		} else {
			com, mass = c.CenterOfMass(), c.TotalMass()
		}

		dx := com.Sub(pos)
		r2 := dx.Dot(dx) + softening2

		if c.IsLeaf() || c.HalfWidth()*c.HalfWidth() < theta2*r2 {
			r := math.Sqrt(r2)
			acc = acc.Add(dx.Scale(mass / (r2 * r)))
		} else {
			acc = acc.Add(accelerationAt(c, pos, theta2, softening2))
		}
	}
	return acc
}
