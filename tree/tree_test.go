package tree_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/nbody/bounds"
	"github.com/katalvlaran/nbody/tree"
	"github.com/katalvlaran/nbody/vector"
)

func cube(center vector.Vector2, hw float64) bounds.Cube[vector.Vector2] {
	return bounds.Cube[vector.Vector2]{Center: center, HalfWidth: hw}
}

func TestBuildSequential_MassAndCOMConservation(t *testing.T) {
	samples := []tree.Sample[vector.Vector2]{
		{Point: vector.Vector2{X: -0.4, Y: -0.4}, Mass: 2},
		{Point: vector.Vector2{X: 0.4, Y: -0.4}, Mass: 3},
		{Point: vector.Vector2{X: -0.4, Y: 0.4}, Mass: 1},
		{Point: vector.Vector2{X: 0.4, Y: 0.4}, Mass: 4},
	}
	root := tree.BuildSequential(cube(vector.Vector2{}, 1), samples, tree.DefaultBuildConfig())

	wantMass := 0.0
	var wantCOM vector.Vector2
	for _, s := range samples {
		wantMass += s.Mass
		wantCOM = wantCOM.Add(s.Point.Scale(s.Mass))
	}
	wantCOM = wantCOM.Scale(1 / wantMass)

	if math.Abs(root.TotalMass()-wantMass) > 1e-9*wantMass {
		t.Errorf("TotalMass = %v; want %v", root.TotalMass(), wantMass)
	}
	if d := root.CenterOfMass().Sub(wantCOM).InfNorm(); d > 1e-9 {
		t.Errorf("CenterOfMass = %v; want %v", root.CenterOfMass(), wantCOM)
	}
}

func TestBuild_ParallelMatchesSequentialAggregates(t *testing.T) {
	samples := make([]tree.Sample[vector.Vector2], 0, 64)
	for i := 0; i < 64; i++ {
		x := float64(i%8)/8 - 0.5 + 0.01
		y := float64(i/8)/8 - 0.5 + 0.02
		samples = append(samples, tree.Sample[vector.Vector2]{Point: vector.Vector2{X: x, Y: y}, Mass: 1})
	}
	c := cube(vector.Vector2{}, 0.6)

	seq := tree.BuildSequential(c, samples, tree.DefaultBuildConfig())
	par, err := tree.Build(c, samples, tree.DefaultBuildConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(seq.TotalMass()-par.TotalMass()) > 1e-9 {
		t.Errorf("total mass mismatch: sequential=%v parallel=%v", seq.TotalMass(), par.TotalMass())
	}
	if d := seq.CenterOfMass().Sub(par.CenterOfMass()).InfNorm(); d > 1e-9 {
		t.Errorf("center of mass mismatch: sequential=%v parallel=%v", seq.CenterOfMass(), par.CenterOfMass())
	}
}

func TestBuild_EmptySamples(t *testing.T) {
	root, err := tree.Build(cube(vector.Vector2{}, 1), nil, tree.DefaultBuildConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.TotalMass() != 0 {
		t.Errorf("TotalMass = %v; want 0", root.TotalMass())
	}
	for _, c := range root.Children() {
		if !c.IsEmpty() {
			t.Errorf("expected all children empty, got %v", c)
		}
	}
}

func TestInsert_CoincidentBodiesMergeAtMaxDepth(t *testing.T) {
	p := vector.Vector2{X: 0.1, Y: 0.1}
	samples := []tree.Sample[vector.Vector2]{
		{Point: p, Mass: 1},
		{Point: p, Mass: 3},
	}
	cfg := tree.BuildConfig{MaxDepth: 4}
	root := tree.BuildSequential(cube(vector.Vector2{}, 1), samples, cfg)

	if math.Abs(root.TotalMass()-4) > 1e-9 {
		t.Fatalf("TotalMass = %v; want 4", root.TotalMass())
	}
	if d := root.CenterOfMass().Sub(p).InfNorm(); d > 1e-9 {
		t.Fatalf("CenterOfMass = %v; want %v", root.CenterOfMass(), p)
	}
}

func TestInsert_TieBreakGoesLower(t *testing.T) {
	center := vector.Vector2{}
	samples := []tree.Sample[vector.Vector2]{
		{Point: center, Mass: 1}, // exactly on the center: must land "lower" (index 0)
	}
	root := tree.BuildSequential(cube(center, 1), samples, tree.DefaultBuildConfig())
	children := root.Children()
	if children[0].IsEmpty() || !children[0].IsLeaf() {
		t.Fatalf("expected a leaf in the lower (index 0) slot, got %+v", children[0])
	}
	for i := 1; i < len(children); i++ {
		if !children[i].IsEmpty() {
			t.Fatalf("expected slot %d empty, got %+v", i, children[i])
		}
	}
}
