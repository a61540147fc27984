// Package logging provides structured logging for omg.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Structured logging with JSON, text, and console formats
//   - Context-aware logging with run IDs, bundle and document paths
//   - Configurable log levels (debug, info, warn, error)
//
// Logs go to stderr by default so that command output on stdout stays
// machine readable.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "text"})
//
//	ctx := logging.WithRunID(context.Background(), logging.NewRunID())
//	ctx = logging.WithBundle(ctx, "/tmp/must-gather")
//	logger.WithContext(ctx).Info("Inspecting bundle", "documents", 412)
//
// Packages that take a *slog.Logger receive logger.Slog().
package logging
