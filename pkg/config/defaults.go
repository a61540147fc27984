package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values for configuration fields.
const (
	// Bundle defaults
	DefaultBundleSkipHidden = true
	DefaultBundleWorkers    = 4

	// Loader defaults
	DefaultLoaderPrintWarnings = true

	// Output defaults
	DefaultOutputFormat = "table"

	// Watch defaults
	DefaultWatchDebounce = 500 * time.Millisecond

	// Telemetry defaults
	DefaultLoggingLevel     = "warn"
	DefaultLoggingFormat    = "text"
	DefaultMetricsNamespace = "omg"
)

// DefaultCachePath returns the default inspection cache location under the
// user cache directory, falling back to the working directory.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".omg", "inspections.db")
	}
	return filepath.Join(dir, "omg", "inspections.db")
}

// DefaultExtensions returns the default snapshot file extensions.
func DefaultExtensions() []string {
	return []string{".yaml", ".yml"}
}

// Default returns a Config with every field set to its default value.
// Boolean defaults that are true can only be expressed here, so file
// loading starts from Default and decodes on top of it.
func Default() *Config {
	cfg := &Config{
		Bundle: BundleConfig{
			SkipHidden: DefaultBundleSkipHidden,
		},
		Loader: LoaderConfig{
			PrintWarnings: DefaultLoaderPrintWarnings,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Bundle defaults
	if len(cfg.Bundle.Extensions) == 0 {
		cfg.Bundle.Extensions = DefaultExtensions()
	}
	if cfg.Bundle.Workers == 0 {
		cfg.Bundle.Workers = DefaultBundleWorkers
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = DefaultOutputFormat
	}

	// Watch defaults
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultWatchDebounce
	}

	// Cache defaults
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath()
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}
