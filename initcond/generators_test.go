package initcond_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/nbody/initcond"
	"github.com/katalvlaran/nbody/vector"
)

func TestUniform_InvalidN(t *testing.T) {
	_, err := initcond.Uniform[vector.Vector2](0, 1)
	if !errors.Is(err, initcond.ErrInvalidN) {
		t.Fatalf("got %v; want ErrInvalidN", err)
	}
}

func TestUniform_PositionsInUnitSquareAndUnitMass(t *testing.T) {
	bodies, err := initcond.Uniform[vector.Vector2](256, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 256 {
		t.Fatalf("len = %d; want 256", len(bodies))
	}
	for i, b := range bodies {
		if b.M != 1 {
			t.Fatalf("bodies[%d].M = %v; want 1", i, b.M)
		}
		if b.V != (vector.Vector2{}) || b.A != (vector.Vector2{}) {
			t.Fatalf("bodies[%d] has nonzero V or A at init: %+v", i, b)
		}
		if b.X.X < 0 || b.X.X >= 1 || b.X.Y < 0 || b.X.Y >= 1 {
			t.Fatalf("bodies[%d].X = %v outside [0,1)^2", i, b.X)
		}
	}
}

func TestUniform_DeterministicGivenSeed(t *testing.T) {
	a, err := initcond.Uniform[vector.Vector2](64, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := initcond.Uniform[vector.Vector2](64, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("bodies[%d] differ across runs with the same seed: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestTwoSquare_SplitFirstHalfAtRestSecondHalfMoving(t *testing.T) {
	bodies, err := initcond.TwoSquare[vector.Vector2](100, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 100 {
		t.Fatalf("len = %d; want 100", len(bodies))
	}
	first, last := bodies[0], bodies[len(bodies)-1]
	if first.V != (vector.Vector2{}) {
		t.Fatalf("first half should be at rest, got V=%v", first.V)
	}
	if last.V == (vector.Vector2{}) {
		t.Fatalf("second half should carry bulk velocity, got V=%v", last.V)
	}
}

func TestDisk_FiniteAndUnitMass(t *testing.T) {
	bodies, err := initcond.Disk[vector.Vector2](500, 9, vector.Vector2{X: 0.5, Y: 0.5}, 0.2, vector.Vector2{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, b := range bodies {
		if b.M != 1 {
			t.Fatalf("bodies[%d].M = %v; want 1", i, b.M)
		}
		if math.IsNaN(b.X.InfNorm()) || math.IsInf(b.X.InfNorm(), 0) {
			t.Fatalf("bodies[%d].X non-finite: %v", i, b.X)
		}
		if math.IsNaN(b.V.InfNorm()) || math.IsInf(b.V.InfNorm(), 0) {
			t.Fatalf("bodies[%d].V non-finite: %v", i, b.V)
		}
		d := b.X.Sub(vector.Vector2{X: 0.5, Y: 0.5}).InfNorm()
		if d > 0.2+1e-9 {
			t.Fatalf("bodies[%d].X = %v lies outside the disk radius", i, b.X)
		}
	}
}

func TestGalaxyCollision_TotalCountAndFiniteness(t *testing.T) {
	bodies, err := initcond.GalaxyCollision[vector.Vector2](1000, 11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bodies) != 1000 {
		t.Fatalf("len = %d; want 1000", len(bodies))
	}
	totalMass := 0.0
	for _, b := range bodies {
		totalMass += b.M
		if math.IsNaN(b.X.InfNorm()) {
			t.Fatalf("non-finite position %v", b.X)
		}
	}
	if totalMass != 1000 {
		t.Fatalf("totalMass = %v; want 1000", totalMass)
	}
}

func TestGenerators_Vector3Dimension(t *testing.T) {
	bodies, err := initcond.Uniform[vector.Vector3](32, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, b := range bodies {
		if b.X.Z < 0 || b.X.Z >= 1 {
			t.Fatalf("bodies[%d].X.Z = %v outside [0,1)", i, b.X.Z)
		}
	}

	disk, err := initcond.Disk[vector.Vector3](32, 1, vector.Vector3{}, 0.1, vector.Vector3{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, b := range disk {
		if b.X.Z != 0 || b.V.Z != 0 {
			t.Fatalf("bodies[%d] disk should stay in the XY plane, got X=%v V=%v", i, b.X, b.V)
		}
	}
}
