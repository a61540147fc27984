package config

import "time"

// Config is the root configuration structure for omg.
// It is stored as YAML, by default in ~/.omg.yaml.
type Config struct {
	// Bundle describes the must-gather bundle being inspected and how its
	// documents are discovered.
	Bundle BundleConfig `yaml:"bundle"`

	// Loader controls how snapshot documents are parsed.
	Loader LoaderConfig `yaml:"loader"`

	// Output controls how command results are rendered.
	Output OutputConfig `yaml:"output"`

	// Watch controls the --watch mode of the inspection commands.
	Watch WatchConfig `yaml:"watch"`

	// Cache controls the inspection cache.
	Cache CacheConfig `yaml:"cache"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// BundleConfig contains configuration for locating snapshot documents.
type BundleConfig struct {
	// Path is the root directory of the must-gather bundle selected with
	// "omg use". Empty until a bundle has been selected.
	Path string `yaml:"path"`

	// Extensions is the list of file extensions treated as snapshot documents.
	// Default: [".yaml", ".yml"]
	Extensions []string `yaml:"extensions"`

	// SkipHidden skips files and directories whose name starts with a dot.
	// Default: true
	SkipHidden bool `yaml:"skip_hidden"`

	// Workers is the number of documents loaded concurrently.
	// Default: 4
	Workers int `yaml:"workers"`
}

// LoaderConfig contains configuration for the snapshot loader.
type LoaderConfig struct {
	// PrintWarnings writes a [WARN] line for every document that needed
	// trailing lines dropped, and an [ERROR] line for unusable documents.
	// Default: true
	PrintWarnings bool `yaml:"print_warnings"`
}

// OutputConfig contains configuration for command output.
type OutputConfig struct {
	// Format is the default output format.
	// Options: "table", "json", "yaml"
	// Default: "table"
	Format string `yaml:"format"`
}

// WatchConfig contains configuration for watching a bundle for changes.
type WatchConfig struct {
	// Debounce is the quiet period after the last file event before the
	// bundle is inspected again.
	// Default: 500ms
	Debounce time.Duration `yaml:"debounce"`

	// Poll is a cron schedule on which the bundle is inspected again even
	// without file events, for bundles on network filesystems.
	// Example: "@every 30s". Default: "" (events only)
	Poll string `yaml:"poll"`
}

// CacheConfig contains configuration for the SQLite inspection cache.
type CacheConfig struct {
	// Enabled stores the objects of cleanly loaded documents so unchanged
	// documents are not parsed again.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Path is the cache database file.
	// Default: <user cache dir>/omg/inspections.db
	Path string `yaml:"path"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics collection configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit.
	// Options: "debug", "info", "warn", "error"
	// Default: "warn"
	Level string `yaml:"level"`

	// Format controls the log output format.
	// Options: "json", "text", "console"
	// Default: "text"
	Format string `yaml:"format"`

	// AddSource includes file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether load and age metrics are collected.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric name prefix.
	// Default: "omg"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "" (none)
	Subsystem string `yaml:"subsystem"`

	// Textfile is the path the metrics are written to at the end of a run,
	// in the node-exporter textfile format. Empty disables the export.
	Textfile string `yaml:"textfile"`
}
