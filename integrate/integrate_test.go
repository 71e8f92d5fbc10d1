package integrate_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/nbody/body"
	"github.com/katalvlaran/nbody/integrate"
	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/vector"
)

func TestStep_KickDrift(t *testing.T) {
	store, err := body.New([]body.Body[vector.Vector2]{
		{X: vector.Vector2{X: 0, Y: 0}, V: vector.Vector2{X: 1, Y: 0}, A: vector.Vector2{X: 2, Y: 0}, M: 1},
	})
	if err != nil {
		t.Fatalf("body.New: %v", err)
	}
	cfg := integrate.Config{Dt: 0.1, SchedulerConfig: scheduler.DefaultConfig()}
	if err := integrate.Step(context.Background(), store, cfg); err != nil {
		t.Fatalf("Step: %v", err)
	}

	b := store.Bodies()[0]
	wantX := vector.Vector2{X: 0 + (1+0.05*2)*0.1, Y: 0}
	wantV := vector.Vector2{X: 1 + 2*0.1, Y: 0}
	if d := b.X.Sub(wantX).InfNorm(); d > 1e-12 {
		t.Errorf("X = %v; want %v", b.X, wantX)
	}
	if d := b.V.Sub(wantV).InfNorm(); d > 1e-12 {
		t.Errorf("V = %v; want %v", b.V, wantV)
	}
	if b.A != (vector.Vector2{}) {
		t.Errorf("A = %v; want zero after step", b.A)
	}
}

func TestStep_SingleBodyAtRestStaysAtRest(t *testing.T) {
	store, _ := body.New([]body.Body[vector.Vector2]{
		{X: vector.Vector2{X: 3, Y: -2}, M: 1},
	})
	cfg := integrate.Config{Dt: 1e-3, SchedulerConfig: scheduler.DefaultConfig()}
	for i := 0; i < 10; i++ {
		if err := integrate.Step(context.Background(), store, cfg); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
	b := store.Bodies()[0]
	if b.X != (vector.Vector2{X: 3, Y: -2}) {
		t.Errorf("X = %v; want unchanged", b.X)
	}
}

func TestStep_HaltsOnNonFinite(t *testing.T) {
	store, _ := body.New([]body.Body[vector.Vector2]{
		{X: vector.Vector2{X: 0, Y: 0}, A: vector.Vector2{X: math.Inf(1), Y: 0}, M: 1},
	})
	cfg := integrate.Config{Dt: 1, HaltOnNonFinite: true, SchedulerConfig: scheduler.DefaultConfig()}
	err := integrate.Step(context.Background(), store, cfg)
	if !errors.Is(err, integrate.ErrNonFinite) {
		t.Fatalf("got %v; want ErrNonFinite", err)
	}
}

func TestStep_ContinuesWhenNotHalting(t *testing.T) {
	store, _ := body.New([]body.Body[vector.Vector2]{
		{X: vector.Vector2{X: 0, Y: 0}, A: vector.Vector2{X: math.Inf(1), Y: 0}, M: 1},
	})
	cfg := integrate.Config{Dt: 1, HaltOnNonFinite: false, SchedulerConfig: scheduler.DefaultConfig()}
	if err := integrate.Step(context.Background(), store, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
