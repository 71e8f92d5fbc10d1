package simconfig_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/nbody/simconfig"
)

func TestNew_DefaultsPlusOptions(t *testing.T) {
	cfg, err := simconfig.New(
		simconfig.WithN(1000),
		simconfig.WithDim(3),
		simconfig.WithScenario(simconfig.Disk),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.N != 1000 || cfg.Dim != 3 || cfg.Scenario != simconfig.Disk {
		t.Errorf("got %+v", cfg)
	}
	if cfg.Dt != 1e-3 || cfg.Theta != 0.5 || cfg.Softening != 1e-4 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestNew_OptionsOverrideInOrder(t *testing.T) {
	cfg, err := simconfig.New(
		simconfig.WithN(10),
		simconfig.WithDim(2),
		simconfig.WithDim(3),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Dim != 3 {
		t.Errorf("Dim = %d; want 3 (last option should win)", cfg.Dim)
	}
}

func TestValidate_RejectsZeroN(t *testing.T) {
	_, err := simconfig.New(simconfig.WithN(0))
	if !errors.Is(err, simconfig.ErrConfigInvalid) {
		t.Fatalf("got %v; want ErrConfigInvalid", err)
	}
}

func TestValidate_RejectsBadTheta(t *testing.T) {
	_, err := simconfig.New(simconfig.WithN(10), simconfig.WithTheta(0))
	if !errors.Is(err, simconfig.ErrConfigInvalid) {
		t.Fatalf("got %v; want ErrConfigInvalid for theta=0", err)
	}
	_, err = simconfig.New(simconfig.WithN(10), simconfig.WithTheta(2.5))
	if !errors.Is(err, simconfig.ErrConfigInvalid) {
		t.Fatalf("got %v; want ErrConfigInvalid for theta=2.5", err)
	}
}

func TestValidate_RejectsBadDim(t *testing.T) {
	_, err := simconfig.New(simconfig.WithN(10), simconfig.WithDim(4))
	if !errors.Is(err, simconfig.ErrConfigInvalid) {
		t.Fatalf("got %v; want ErrConfigInvalid for dim=4", err)
	}
}

func TestValidate_RejectsUnknownScenario(t *testing.T) {
	_, err := simconfig.New(simconfig.WithN(10), simconfig.WithScenario("spiral"))
	if !errors.Is(err, simconfig.ErrConfigInvalid) {
		t.Fatalf("got %v; want ErrConfigInvalid for unrecognized scenario", err)
	}
}

func TestSoftening2(t *testing.T) {
	cfg, err := simconfig.New(simconfig.WithN(1), simconfig.WithSoftening(0.1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got, want := cfg.Softening2(), 0.01; got < want-1e-15 || got > want+1e-15 {
		t.Errorf("Softening2() = %v; want %v", got, want)
	}
}
