// Package simconfig holds the simulation's flat, immutable configuration
// and the functional options used to build it. A Config is validated once,
// at construction, then passed by reference into every other package; no
// package mutates it afterward.
package simconfig

import (
	"errors"
	"fmt"
)

// Scenario selects the initial-condition generator.
type Scenario string

const (
	Uniform         Scenario = "uniform"
	TwoSquare       Scenario = "two_square"
	Disk            Scenario = "disk"
	GalaxyCollision Scenario = "galaxy_collision"
)

func (s Scenario) valid() bool {
	switch s {
	case Uniform, TwoSquare, Disk, GalaxyCollision:
		return true
	default:
		return false
	}
}

// ErrConfigInvalid is returned by Validate (and therefore by New) when a
// field violates its documented range. Use errors.Is to detect it; errors.As
// is not needed since the offending field is already named in the message.
var ErrConfigInvalid = errors.New("simconfig: invalid configuration")

// Config is the full set of run parameters named in the external
// interface: body count, integration step, Barnes–Hut opening angle,
// softening length, spatial dimension, RNG seed, scenario, and worker
// count.
type Config struct {
	N         int
	Dt        float64
	Theta     float64
	Softening float64
	Dim       int
	Seed      int64
	Scenario  Scenario
	Workers   int

	// HaltOnNonFinite controls whether a non-finite position or velocity
	// during integration halts the step or is allowed to persist (see
	// integrate.Config.HaltOnNonFinite, which this field feeds).
	HaltOnNonFinite bool
}

// Option mutates a Config during construction. Option constructors never
// panic and assign their argument as given; range checks are left to
// Validate.
type Option func(cfg *Config)

// WithN sets the body count.
func WithN(n int) Option { return func(cfg *Config) { cfg.N = n } }

// WithDt sets the integration time step.
func WithDt(dt float64) Option { return func(cfg *Config) { cfg.Dt = dt } }

// WithTheta sets the Barnes–Hut opening parameter.
func WithTheta(theta float64) Option { return func(cfg *Config) { cfg.Theta = theta } }

// WithSoftening sets the softening length ε.
func WithSoftening(eps float64) Option { return func(cfg *Config) { cfg.Softening = eps } }

// WithDim sets the spatial dimension, 2 or 3.
func WithDim(dim int) Option { return func(cfg *Config) { cfg.Dim = dim } }

// WithSeed sets the deterministic RNG seed.
func WithSeed(seed int64) Option { return func(cfg *Config) { cfg.Seed = seed } }

// WithScenario sets the initial-condition generator.
func WithScenario(s Scenario) Option { return func(cfg *Config) { cfg.Scenario = s } }

// WithWorkers sets the scheduler worker count.
func WithWorkers(n int) Option { return func(cfg *Config) { cfg.Workers = n } }

// WithHaltOnNonFinite sets whether integration halts on non-finite state.
func WithHaltOnNonFinite(halt bool) Option {
	return func(cfg *Config) { cfg.HaltOnNonFinite = halt }
}

// defaults returns a Config with every field at its documented default:
// softening 1e-4 (the value that keeps property 4's direct-sum equivalence
// well-defined at θ=0), dim 2, one worker per logical CPU detected by the
// scheduler package at New time, uniform scenario, seed 1.
func defaults() Config {
	return Config{
		N:         0,
		Dt:        1e-3,
		Theta:     0.5,
		Softening: 1e-4,
		Dim:       2,
		Seed:      1,
		Scenario:  Uniform,
		Workers:   0, // 0 means "let scheduler.DefaultConfig choose"
	}
}

// New applies opts over the documented defaults and validates the result.
func New(opts ...Option) (Config, error) {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports ErrConfigInvalid, wrapped with the offending field, when
// n = 0, dt ≤ 0, theta ∉ (0, 2], dim ∉ {2, 3}, softening < 0, workers < 0,
// or scenario is not one of the recognized enum values.
func (c Config) Validate() error {
	switch {
	case c.N <= 0:
		return fmt.Errorf("%w: n must be positive, got %d", ErrConfigInvalid, c.N)
	case c.Dt <= 0:
		return fmt.Errorf("%w: dt must be positive, got %v", ErrConfigInvalid, c.Dt)
	case c.Theta <= 0 || c.Theta > 2:
		return fmt.Errorf("%w: theta must be in (0, 2], got %v", ErrConfigInvalid, c.Theta)
	case c.Softening < 0:
		return fmt.Errorf("%w: softening must be non-negative, got %v", ErrConfigInvalid, c.Softening)
	case c.Dim != 2 && c.Dim != 3:
		return fmt.Errorf("%w: dim must be 2 or 3, got %d", ErrConfigInvalid, c.Dim)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must be non-negative, got %d", ErrConfigInvalid, c.Workers)
	case !c.Scenario.valid():
		return fmt.Errorf("%w: unrecognized scenario %q", ErrConfigInvalid, c.Scenario)
	default:
		return nil
	}
}

// Softening2 returns the softening length squared, as consumed by
// force.Config.
func (c Config) Softening2() float64 { return c.Softening * c.Softening }
