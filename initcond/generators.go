// Package initcond supplies the initial-condition generators the simulation
// core treats as an external collaborator: each function here yields a
// finite sequence of Body records with zero acceleration, finite positions,
// and strictly positive mass, deterministic given a seed.
package initcond

import (
	"math"
	"math/rand"

	"github.com/katalvlaran/nbody/body"
	"github.com/katalvlaran/nbody/vector"
)

// galaxyOuterRadius and galaxyBulkSpeed are the disk-scenario constants:
// grounded on original_source/src/generator.rs's galaxy/galaxy_collision,
// with the render-scale factor (the original's "* 10" on orbital speed, and
// its overall=500 bulk speed) dropped since this module carries no fixed
// unit system tied to a frame rate; galaxyBulkSpeed is instead sized to be
// a modest fraction of a disk's own outer orbital speed.
const (
	galaxyOuterRadius = 0.2
	galaxyBulkSpeed   = 1.0
)

func dimOf[P vector.Vec[P]]() int {
	var zero P
	switch zero.NumChildren() {
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

// PlanarPoint builds a P with first axis x, second axis y (if P has one),
// and every remaining axis zero. Exported so callers outside this package
// (e.g. the sim package choosing a disk center at runtime) can construct a
// generic P without knowing whether P is Vector2 or Vector3.
func PlanarPoint[P vector.Vec[P]](x, y float64) P {
	var zero P
	d := dimOf[P]()
	axes := make([]float64, d)
	if d > 0 {
		axes[0] = x
	}
	if d > 1 {
		axes[1] = y
	}
	return zero.FromAxes(axes...)
}

// axisUniform builds a P whose every axis is an independent Uniform[0,1)
// draw from rng, scaled by scale and shifted by offset.
func axisUniform[P vector.Vec[P]](rng *rand.Rand, scale, offset float64) P {
	var zero P
	d := dimOf[P]()
	axes := make([]float64, d)
	for i := range axes {
		axes[i] = rng.Float64()*scale + offset
	}
	return zero.FromAxes(axes...)
}

// Uniform yields n unit-mass bodies at rest, positioned independently
// uniformly in the unit hypercube [0, 1)^D, grounded on generator.rs's
// simple_square.
func Uniform[P vector.Vec[P]](n int, seed int64) ([]body.Body[P], error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}
	rng := rngFromSeed(seed)
	var zero P
	out := make([]body.Body[P], n)
	for i := range out {
		out[i] = body.Body[P]{X: axisUniform[P](rng, 1, 0), V: zero, A: zero, M: 1}
	}
	return out, nil
}

// TwoSquare yields n unit-mass bodies split into two offset clouds, grounded
// on generator.rs's square_collision: the first half sits in the lower
// subcube [0, 0.5)^D at rest, the second half in the upper subcube
// [0.5, 1)^D moving toward it along the last axis at galaxyBulkSpeed.
func TwoSquare[P vector.Vec[P]](n int, seed int64) ([]body.Body[P], error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}
	rng := rngFromSeed(seed)
	rng1 := deriveRNG(rng, 1)
	rng2 := deriveRNG(rng, 2)

	n1 := n / 2
	n2 := n - n1
	var zero P
	d := dimOf[P]()
	lastAxis := d - 1

	bulk := make([]float64, d)
	if lastAxis >= 0 {
		bulk[lastAxis] = galaxyBulkSpeed
	}
	v2 := zero.FromAxes(bulk...).Neg()

	out := make([]body.Body[P], 0, n1+n2)
	for i := 0; i < n1; i++ {
		out = append(out, body.Body[P]{X: axisUniform[P](rng1, 0.5, 0), V: zero, A: zero, M: 1})
	}
	for i := 0; i < n2; i++ {
		out = append(out, body.Body[P]{X: axisUniform[P](rng2, 0.5, 0.5), V: v2, A: zero, M: 1})
	}
	return out, nil
}

// Disk generates n unit-mass bodies distributed over a disk of outerRadius
// centered at center, confined to the XY plane, with a circular velocity
// profile v(r) ∝ sqrt(enclosed_mass(r) · r) assuming uniform surface
// density (so enclosed_mass(r) = n·(r/outerRadius)²), plus a uniform
// bulkVelocity added to every body. Grounded on generator.rs's galaxy.
func Disk[P vector.Vec[P]](n int, seed int64, center P, outerRadius float64, bulkVelocity P) ([]body.Body[P], error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}
	rng := rngFromSeed(seed)
	out := make([]body.Body[P], n)
	for i := range out {
		r := math.Sqrt(rng.Float64()) * outerRadius
		theta := rng.Float64() * 2 * math.Pi
		enclosedMass := float64(n) * (r / outerRadius) * (r / outerRadius)
		speed := math.Sqrt(enclosedMass * r)

		offset := PlanarPoint[P](r*math.Cos(theta), r*math.Sin(theta))
		vel := PlanarPoint[P](-speed*math.Sin(theta), speed*math.Cos(theta))

		out[i] = body.Body[P]{
			X: center.Add(offset),
			V: bulkVelocity.Add(vel),
			M: 1,
		}
	}
	return out, nil
}

// GalaxyCollision composes two Disk generators at (0.3, 0.3) and (0.6, 0.6)
// with opposing bulk velocities, splitting n between them, grounded on
// generator.rs's galaxy_collision. Each half draws from an independently
// derived RNG stream so the result does not depend on evaluation order.
func GalaxyCollision[P vector.Vec[P]](n int, seed int64) ([]body.Body[P], error) {
	if n <= 0 {
		return nil, ErrInvalidN
	}
	rng := rngFromSeed(seed)
	seed1 := deriveRNG(rng, 1).Int63()
	seed2 := deriveRNG(rng, 2).Int63()

	n1 := n / 2
	n2 := n - n1

	center1 := PlanarPoint[P](0.3, 0.3)
	center2 := PlanarPoint[P](0.6, 0.6)
	bulk1 := PlanarPoint[P](0, galaxyBulkSpeed)
	bulk2 := PlanarPoint[P](0, -galaxyBulkSpeed)

	g1, err := Disk[P](n1, seed1, center1, galaxyOuterRadius, bulk1)
	if err != nil {
		return nil, err
	}
	g2, err := Disk[P](n2, seed2, center2, galaxyOuterRadius, bulk2)
	if err != nil {
		return nil, err
	}
	return append(g1, g2...), nil
}
