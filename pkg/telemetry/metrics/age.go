package metrics

import (
	"omg-hq/omg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// AgeMetrics tracks age computations.
//
// Metrics:
//   - omg_age_computations_total: computations by result (known, unknown)
type AgeMetrics struct {
	computationsTotal *prometheus.CounterVec
}

// NewAgeMetrics creates and registers age metrics with the provided registry.
func NewAgeMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AgeMetrics {
	am := &AgeMetrics{
		computationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "age_computations_total",
				Help:      "Total number of object ages computed, by result",
			},
			[]string{"result"},
		),
	}

	registry.MustRegister(am.computationsTotal)

	// Pre-create both series so a run with no unknown ages still exports 0.
	am.computationsTotal.WithLabelValues("known")
	am.computationsTotal.WithLabelValues("unknown")

	return am
}

// Record records one computation.
func (am *AgeMetrics) Record(known bool) {
	result := "unknown"
	if known {
		result = "known"
	}
	am.computationsTotal.WithLabelValues(result).Inc()
}
