package metrics

import (
	"fmt"
	"time"

	"omg-hq/omg/pkg/config"
	"omg-hq/omg/pkg/snapshot"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns the omg metrics and the registry they are registered with.
//
// A disabled collector accepts every call and records nothing, so callers
// never need to nil-check it.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	loadMetrics  *LoadMetrics
	ageMetrics   *AgeMetrics
	cacheMetrics *CacheMetrics
}

// NewCollector creates a collector for cfg. If registry is nil a private
// registry is created, keeping omg metrics out of the global default.
//
// Example:
//
//	cfg := &config.MetricsConfig{Enabled: true, Namespace: "omg"}
//	collector := metrics.NewCollector(cfg, nil)
//	loader := snapshot.NewLoader(snapshot.Options{Metrics: collector})
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}

	return &Collector{
		config:       cfg,
		registry:     registry,
		loadMetrics:  NewLoadMetrics(cfg, registry),
		ageMetrics:   NewAgeMetrics(cfg, registry),
		cacheMetrics: NewCacheMetrics(cfg, registry),
	}
}

// RecordLoad records one snapshot load. It implements snapshot.Recorder.
func (c *Collector) RecordLoad(outcome snapshot.Outcome, linesSkipped int, duration time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.loadMetrics.Record(string(outcome), linesSkipped, duration)
}

// RecordAge records one age computation.
func (c *Collector) RecordAge(known bool) {
	if !c.config.Enabled {
		return
	}
	c.ageMetrics.Record(known)
}

// RecordCacheLookup records one inspection cache lookup.
func (c *Collector) RecordCacheLookup(hit bool) {
	if !c.config.Enabled {
		return
	}
	c.cacheMetrics.Record(hit)
}

// Enabled reports whether the collector records anything.
func (c *Collector) Enabled() bool {
	return c.config.Enabled
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes every registered metric to path in the text
// exposition format read by the node-exporter textfile collector.
// It is a no-op when the collector is disabled or path is empty.
func (c *Collector) WriteTextfile(path string) error {
	if !c.config.Enabled || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %q: %w", path, err)
	}
	return nil
}

var _ snapshot.Recorder = (*Collector)(nil)
