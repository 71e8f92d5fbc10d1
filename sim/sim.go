// Package sim wires bounds, tree, force, and integrate into the per-tick
// control flow:
//
//	bounding -> tree builder -> force evaluator -> integrator -> (optional) snapshot
//
// Simulation owns the body store for the run's duration; the tree it builds
// each step is transient and discarded at the step's end, so Simulation
// itself never retains one between calls to Step.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/nbody/body"
	"github.com/katalvlaran/nbody/bounds"
	"github.com/katalvlaran/nbody/force"
	"github.com/katalvlaran/nbody/initcond"
	"github.com/katalvlaran/nbody/integrate"
	"github.com/katalvlaran/nbody/scheduler"
	"github.com/katalvlaran/nbody/simconfig"
	"github.com/katalvlaran/nbody/snapshot"
	"github.com/katalvlaran/nbody/telemetry"
	"github.com/katalvlaran/nbody/tree"
	"github.com/katalvlaran/nbody/vector"
)

// Simulation advances a body store one tick at a time under a fixed
// configuration. It carries no state beyond the body store, the step
// counter, and (optionally) a metrics sink and snapshot mailbox.
type Simulation[P vector.Vec[P]] struct {
	cfg     simconfig.Config
	store   *body.Store[P]
	metrics *telemetry.Metrics
	mailbox *Mailbox[P]
	snapCfg snapshot.Config
	step    int64

	schedCfg scheduler.Config
	buildCfg tree.BuildConfig
	forceCfg force.Config
	stepCfg  integrate.Config
}

// WithSnapshotConfig sets the configuration Step uses when publishing to
// the mailbox. Must be called before the first Step; it is not
// synchronized against concurrent Step calls.
func (s *Simulation[P]) WithSnapshotConfig(cfg snapshot.Config) *Simulation[P] {
	s.snapCfg = cfg
	return s
}

// New builds a Simulation from cfg's scenario generator and the given
// (possibly nil) metrics sink. metrics may be nil; every telemetry.Metrics
// method is a documented no-op on a nil receiver.
func New[P vector.Vec[P]](cfg simconfig.Config, metrics *telemetry.Metrics) (*Simulation[P], error) {
	bodies, err := generate[P](cfg)
	if err != nil {
		return nil, fmt.Errorf("sim: generating initial conditions: %w", err)
	}
	store, err := body.New(bodies)
	if err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	schedCfg := scheduler.Config{Workers: cfg.Workers}
	s := &Simulation[P]{
		cfg:      cfg,
		store:    store,
		metrics:  metrics,
		mailbox:  NewMailbox[P](),
		schedCfg: schedCfg,
		buildCfg: tree.BuildConfig{SchedulerConfig: schedCfg},
		forceCfg: force.Config{Theta: cfg.Theta, Softening2: cfg.Softening2(), SchedulerConfig: schedCfg},
		stepCfg:  integrate.Config{Dt: cfg.Dt, HaltOnNonFinite: cfg.HaltOnNonFinite, SchedulerConfig: schedCfg},
	}
	if metrics != nil {
		metrics.SetBodyCount(store.Len())
	}
	return s, nil
}

// generate dispatches cfg.Scenario to the matching initcond generator.
func generate[P vector.Vec[P]](cfg simconfig.Config) ([]body.Body[P], error) {
	switch cfg.Scenario {
	case simconfig.Uniform:
		return initcond.Uniform[P](cfg.N, cfg.Seed)
	case simconfig.TwoSquare:
		return initcond.TwoSquare[P](cfg.N, cfg.Seed)
	case simconfig.Disk:
		center := initcond.PlanarPoint[P](0.5, 0.5)
		var bulk P
		return initcond.Disk[P](cfg.N, cfg.Seed, center, 0.4, bulk)
	case simconfig.GalaxyCollision:
		return initcond.GalaxyCollision[P](cfg.N, cfg.Seed)
	default:
		return nil, fmt.Errorf("sim: unrecognized scenario %q", cfg.Scenario)
	}
}

// Store exposes the simulation's body store for read-only inspection
// between steps (e.g. by a test asserting on final positions).
func (s *Simulation[P]) Store() *body.Store[P] { return s.store }

// StepNumber returns how many calls to Step have completed.
func (s *Simulation[P]) StepNumber() int64 { return s.step }

// Step advances the simulation by one tick: it computes the bounding cube,
// builds a fresh tree, evaluates per-body acceleration under the
// Barnes-Hut MAC, integrates position and velocity, and offers a snapshot
// to the mailbox without blocking (Publish stores it only if the previous
// frame has been taken). The tree
// built this tick is discarded when Step returns; nothing in Simulation
// retains a reference to it afterward.
func (s *Simulation[P]) Step(ctx context.Context) error {
	bodies := s.store.Bodies()

	root, err := bounds.Compute[P](ctx, s.store.Positions(), s.schedCfg)
	if err != nil {
		return fmt.Errorf("sim: computing bounds: %w", err)
	}

	samples := make([]tree.Sample[P], len(bodies))
	for i, b := range bodies {
		samples[i] = tree.Sample[P]{Point: b.X, Mass: b.M}
	}
	t, err := tree.Build(root, samples, s.buildCfg)
	if err != nil {
		return fmt.Errorf("sim: building tree: %w", err)
	}

	if err := force.Evaluate[P](ctx, t, s.store, s.forceCfg); err != nil {
		return fmt.Errorf("sim: evaluating force: %w", err)
	}

	if err := integrate.Step[P](ctx, s.store, s.stepCfg); err != nil {
		return fmt.Errorf("sim: integrating: %w", err)
	}

	s.step++
	if s.metrics != nil {
		s.metrics.RecordStep(time.Now())
	}
	if s.mailbox != nil {
		s.mailbox.Publish(root, t, s.snapCfg)
	}
	return nil
}

// Mailbox returns the simulation's snapshot mailbox, for a rendering
// collaborator to poll between steps.
func (s *Simulation[P]) Mailbox() *Mailbox[P] { return s.mailbox }

// SnapshotConfig controls the rectangle projection Step passes to
// Mailbox.Publish; set it with WithSnapshotConfig.
type SnapshotConfig = snapshot.Config
