// Package telemetry exposes the simulation's observable outputs: step
// number, wall-clock steps/sec, and the current body count. Metric updates
// are in-memory counter/gauge operations; nothing in this package performs
// network I/O, so recording a step never blocks the simulation's hot path.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nbody"

// Metrics holds the Prometheus series the simulation loop updates once per
// tick. A nil *Metrics is safe to use everywhere; every method on it is a
// no-op, so callers that don't wire a --metrics-addr pay no instrumentation
// cost beyond the nil check.
type Metrics struct {
	stepsTotal   prometheus.Counter
	stepsPerSec  prometheus.Gauge
	bodiesGauge  prometheus.Gauge
	lastTickNano int64
}

// New constructs and registers the simulation's metrics against reg. Pass
// prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to serve from the default /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		stepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_total",
			Help:      "Total number of simulation steps completed.",
		}),
		stepsPerSec: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "steps_per_second",
			Help:      "Wall-clock steps per second, measured over the most recent step.",
		}),
		bodiesGauge: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bodies",
			Help:      "Number of bodies in the current run.",
		}),
	}
}

// SetBodyCount records the (fixed, for the run's duration) number of bodies.
func (m *Metrics) SetBodyCount(n int) {
	if m == nil {
		return
	}
	m.bodiesGauge.Set(float64(n))
}

// RecordStep increments the step counter and derives steps/sec from the
// elapsed wall-clock time since the previous call. The first call after
// construction only increments the counter; there is no prior tick to
// derive a rate from.
func (m *Metrics) RecordStep(now time.Time) {
	if m == nil {
		return
	}
	m.stepsTotal.Inc()
	nowNano := now.UnixNano()
	if m.lastTickNano != 0 {
		elapsed := time.Duration(nowNano - m.lastTickNano)
		if elapsed > 0 {
			m.stepsPerSec.Set(float64(time.Second) / float64(elapsed))
		}
	}
	m.lastTickNano = nowNano
}
