package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/nbody/sim"
	"github.com/katalvlaran/nbody/simconfig"
	"github.com/katalvlaran/nbody/telemetry"
	"github.com/katalvlaran/nbody/vector"
)

var flagSteps int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run the simulation for a fixed number of steps",
	Example: `  nbody run --n 10000 --scenario uniform --steps 200
  nbody run --config ./nbody.yaml --steps 1000 --metrics-addr :9090`,
	RunE: runSimulation,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 100, "number of simulation steps to run")
	rootCmd.AddCommand(runCmd)
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var metrics *telemetry.Metrics
	if flagMetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics = telemetry.New(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: flagMetricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("nbody: metrics server stopped: %v", err)
			}
		}()
		log.Printf("nbody: serving metrics on http://%s/metrics", flagMetricsAddr)
	}

	log.Printf("nbody: n=%d dim=%d scenario=%s theta=%v dt=%v workers=%d steps=%d",
		cfg.N, cfg.Dim, cfg.Scenario, cfg.Theta, cfg.Dt, cfg.Workers, flagSteps)

	switch cfg.Dim {
	case 2:
		return runLoop[vector.Vector2](cfg, metrics, flagSteps)
	case 3:
		return runLoop[vector.Vector3](cfg, metrics, flagSteps)
	default:
		return fmt.Errorf("nbody: unsupported dim %d", cfg.Dim)
	}
}

// runLoop instantiates a Simulation over the concrete vector type selected
// by cfg.Dim and advances it flagSteps times, logging step number and
// wall-clock steps/sec.
func runLoop[P vector.Vec[P]](cfg simconfig.Config, metrics *telemetry.Metrics, steps int) error {
	s, err := sim.New[P](cfg, metrics)
	if err != nil {
		return err
	}

	ctx := context.Background()
	for i := 0; i < steps; i++ {
		start := time.Now()
		if err := s.Step(ctx); err != nil {
			return fmt.Errorf("nbody: step %d: %w", s.StepNumber(), err)
		}
		if i%100 == 0 || i == steps-1 {
			elapsed := time.Since(start)
			rate := 0.0
			if elapsed > 0 {
				rate = float64(time.Second) / float64(elapsed)
			}
			log.Printf("nbody: step %d (%.1f steps/sec)", s.StepNumber(), rate)
		}
	}
	return nil
}
