// Package telemetry groups the observability packages used by omg.
//
// # Components
//
//   - logging: Structured log/slog logging with run and bundle context
//   - metrics: Prometheus collectors for snapshot loads and age computations
//   - health: Liveness and readiness endpoints for watch sessions
//
// # Usage
//
//	cfg, err := config.LoadConfigWithEnvOverrides(config.DefaultPath())
//	if err != nil {
//	    return err
//	}
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging))
//	if err != nil {
//	    return err
//	}
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	loader := snapshot.NewLoader(snapshot.Options{
//	    PrintWarnings: cfg.Loader.PrintWarnings,
//	    Logger:        logger.Slog(),
//	    Metrics:       collector,
//	})
//
// Metrics are written as a node_exporter textfile when the command exits, or
// served over HTTP together with the health endpoints while "omg ages --watch"
// runs with --metrics-addr.
package telemetry
