// Package metrics provides Prometheus metrics for omg.
//
// omg is a short-lived command, so metrics are not scraped from a server by
// default. A run records into a private registry and, when
// telemetry.metrics.textfile is set, writes the registry at exit in the
// format read by the node-exporter textfile collector. In watch mode the
// registry can also be served over HTTP with Handler.
//
// # Metrics
//
//   - omg_snapshot_loads_total{outcome}: documents loaded (clean, recovered, failed)
//   - omg_snapshot_lines_skipped_total: trailing lines dropped during recovery
//   - omg_snapshot_load_duration_seconds{outcome}: load duration
//   - omg_age_computations_total{result}: ages computed (known, unknown)
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	loader := snapshot.NewLoader(snapshot.Options{Metrics: collector})
//	...
//	if err := collector.WriteTextfile(cfg.Telemetry.Metrics.Textfile); err != nil {
//		return err
//	}
package metrics
