// Package bounds computes the axis-aligned cube a tree is built over: the
// smallest cube, centered on the body cloud's bounding-box center, whose
// half-width covers every body's position on every axis.
package bounds

import (
	"context"
	"errors"

	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/vector"
)

// ErrEmptyInput is returned when Compute is called with zero positions.
var ErrEmptyInput = errors.New("bounds: no positions given")

// Cube is an axis-aligned cube: Center plus HalfWidth along every axis.
type Cube[P vector.Vec[P]] struct {
	Center    P
	HalfWidth float64
}

// Compute scans positions for the componentwise min/max, then returns the
// cube centered on their midpoint with half-width equal to half the
// bounding box's infinity-norm extent. The scan is read-only and is
// parallelized as an embarrassingly-parallel min/max reduction across
// cfg's workers.
//
// Returns ErrEmptyInput if positions is empty.
func Compute[P vector.Vec[P]](ctx context.Context, positions []P, cfg scheduler.Config) (Cube[P], error) {
	if len(positions) == 0 {
		return Cube[P]{}, ErrEmptyInput
	}

	type extent struct {
		min, max P
	}
	n := len(positions)
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	partials := make([]extent, workers)
	for i := range partials {
		partials[i] = extent{min: positions[0], max: positions[0]}
	}

	chunk := (n + workers - 1) / workers
	partialCfg := cfg
	partialCfg.Workers = workers
	partialCfg.MinChunkSize = chunk

	err := scheduler.ParallelFor(ctx, n, partialCfg, func(_ context.Context, lo, hi int) error {
		idx := lo / chunk
		if idx >= workers {
			idx = workers - 1
		}
		local := extent{min: positions[lo], max: positions[lo]}
		for i := lo + 1; i < hi; i++ {
			local.min = local.min.Min(positions[i])
			local.max = local.max.Max(positions[i])
		}
		partials[idx] = local
		return nil
	})
	if err != nil {
		return Cube[P]{}, err
	}

	min, max := partials[0].min, partials[0].max
	for _, p := range partials[1:] {
		min = min.Min(p.min)
		max = max.Max(p.max)
	}

	center := min.Add(max).Scale(0.5)
	halfWidth := max.Sub(min).InfNorm() / 2
	return Cube[P]{Center: center, HalfWidth: halfWidth}, nil
}
