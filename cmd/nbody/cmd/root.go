// Package cmd implements the nbody CLI: a cobra command tree over
// simconfig's flat configuration, with optional viper-backed file loading
// and an optional Prometheus /metrics endpoint. It never logs from inside
// the simulation's hot path; all logging here is process scaffolding.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/nbody/simconfig"
)

var (
	configFile      string
	flagN           int
	flagDt          float64
	flagTheta       float64
	flagSoftening   float64
	flagDim         int
	flagSeed        int64
	flagScenario    string
	flagWorkers     int
	flagHaltOnNaN   bool
	flagMetricsAddr string
)

var rootCmd = &cobra.Command{
	Use:   "nbody",
	Short: "Barnes-Hut N-body gravitational simulation",
	Long: `nbody simulates the gravitational evolution of a body cloud by
rebuilding a Barnes-Hut spatial tree every step and using it to approximate
per-body acceleration in near-linear time.`,
}

// Execute runs the root command, exiting the process with status 1 on
// failure, matching cobra's conventional entry point shape.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "path to a YAML/TOML/JSON configuration file")
	pf.IntVar(&flagN, "n", 0, "number of bodies (overrides config file)")
	pf.Float64Var(&flagDt, "dt", 0, "integration time step")
	pf.Float64Var(&flagTheta, "theta", 0, "Barnes-Hut opening parameter")
	pf.Float64Var(&flagSoftening, "softening", -1, "softening length epsilon")
	pf.IntVar(&flagDim, "dim", 0, "spatial dimension, 2 or 3")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed for deterministic initial conditions")
	pf.StringVar(&flagScenario, "scenario", "", "initial-condition generator: uniform, two_square, disk, galaxy_collision")
	pf.IntVar(&flagWorkers, "workers", 0, "scheduler worker count (0 = logical CPU count)")
	pf.BoolVar(&flagHaltOnNaN, "halt-on-non-finite", false, "halt the step on the first non-finite position or velocity")
	pf.StringVar(&flagMetricsAddr, "metrics-addr", "", "address to serve Prometheus /metrics on, e.g. :9090 (disabled if empty)")
}

// resolveConfig loads a base configuration (simconfig's defaults, or
// --config's file if given) and overlays any explicitly-set CLI flags on
// top of it, returning the validated result. Flags take precedence over
// the config file, matching viper's own override ordering.
func resolveConfig(cmd *cobra.Command) (simconfig.Config, error) {
	var opts []simconfig.Option
	if configFile != "" {
		base, err := simconfig.Load(configFile)
		if err != nil {
			return simconfig.Config{}, fmt.Errorf("nbody: loading %s: %w", configFile, err)
		}
		opts = append(opts,
			simconfig.WithN(base.N),
			simconfig.WithDt(base.Dt),
			simconfig.WithTheta(base.Theta),
			simconfig.WithSoftening(base.Softening),
			simconfig.WithDim(base.Dim),
			simconfig.WithSeed(base.Seed),
			simconfig.WithScenario(base.Scenario),
			simconfig.WithWorkers(base.Workers),
			simconfig.WithHaltOnNonFinite(base.HaltOnNonFinite),
		)
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		opts = append(opts, simconfig.WithN(flagN))
	}
	if flags.Changed("dt") {
		opts = append(opts, simconfig.WithDt(flagDt))
	}
	if flags.Changed("theta") {
		opts = append(opts, simconfig.WithTheta(flagTheta))
	}
	if flags.Changed("softening") {
		opts = append(opts, simconfig.WithSoftening(flagSoftening))
	}
	if flags.Changed("dim") {
		opts = append(opts, simconfig.WithDim(flagDim))
	}
	if flags.Changed("seed") {
		opts = append(opts, simconfig.WithSeed(flagSeed))
	}
	if flags.Changed("scenario") {
		opts = append(opts, simconfig.WithScenario(simconfig.Scenario(flagScenario)))
	}
	if flags.Changed("workers") {
		opts = append(opts, simconfig.WithWorkers(flagWorkers))
	}
	if flags.Changed("halt-on-non-finite") {
		opts = append(opts, simconfig.WithHaltOnNonFinite(flagHaltOnNaN))
	}

	return simconfig.New(opts...)
}
