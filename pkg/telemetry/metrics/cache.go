package metrics

import (
	"omg-hq/omg/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks inspection cache lookups.
//
// Metrics:
//   - omg_inspection_cache_hits_total: documents served from the cache
//   - omg_inspection_cache_misses_total: documents that had to be loaded
//
// These metrics stay at zero unless the inspection cache is enabled.
type CacheMetrics struct {
	hitsTotal   prometheus.Counter
	missesTotal prometheus.Counter
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "inspection_cache_hits_total",
				Help:      "Total number of documents served from the inspection cache",
			},
		),

		missesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "inspection_cache_misses_total",
				Help:      "Total number of documents missing from the inspection cache",
			},
		),
	}

	registry.MustRegister(cm.hitsTotal, cm.missesTotal)

	return cm
}

// Record records one cache lookup.
func (cm *CacheMetrics) Record(hit bool) {
	if hit {
		cm.hitsTotal.Inc()
		return
	}
	cm.missesTotal.Inc()
}
