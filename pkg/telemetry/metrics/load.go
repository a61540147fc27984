package metrics

import (
	"time"

	"omg-hq/omg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// LoadMetrics tracks snapshot document loads.
//
// Metrics:
//   - omg_snapshot_loads_total: loads by outcome (clean, recovered, failed)
//   - omg_snapshot_lines_skipped_total: trailing lines dropped during recovery
//   - omg_snapshot_load_duration_seconds: load duration histogram
type LoadMetrics struct {
	loadsTotal   *prometheus.CounterVec
	linesSkipped prometheus.Counter
	loadDuration *prometheus.HistogramVec
}

// NewLoadMetrics creates and registers load metrics with the provided registry.
func NewLoadMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *LoadMetrics {
	lm := &LoadMetrics{
		loadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshot_loads_total",
				Help:      "Total number of snapshot documents loaded, by outcome",
			},
			[]string{"outcome"},
		),

		linesSkipped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshot_lines_skipped_total",
				Help:      "Total number of trailing lines dropped to parse truncated documents",
			},
		),

		loadDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "snapshot_load_duration_seconds",
				Help:      "Duration of snapshot document loads in seconds",
				// Clean loads take microseconds, recovery reparses once per line.
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		lm.loadsTotal,
		lm.linesSkipped,
		lm.loadDuration,
	)

	return lm
}

// Record records a single load.
func (lm *LoadMetrics) Record(outcome string, linesSkipped int, duration time.Duration) {
	lm.loadsTotal.WithLabelValues(outcome).Inc()
	if linesSkipped > 0 {
		lm.linesSkipped.Add(float64(linesSkipped))
	}
	lm.loadDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
