// Package config provides configuration management for omg.
//
// This package handles loading, validating, and saving the YAML configuration
// file with environment variable overrides. The file is optional: every field
// has a default, and "omg use" writes the file the first time a bundle is
// selected.
//
// # Configuration Loading
//
//	cfg, err := config.LoadConfigWithEnvOverrides(config.DefaultPath())
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention OMG_SECTION_FIELD.
// For example:
//
//   - OMG_BUNDLE_PATH overrides bundle.path
//   - OMG_LOADER_PRINT_WARNINGS overrides loader.print_warnings
//   - OMG_CACHE_ENABLED overrides cache.enabled
//   - OMG_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from the YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	bundle:
//	  path: /tmp/must-gather.local.5243
//	  workers: 8
//
//	loader:
//	  print_warnings: true
//
//	output:
//	  format: table
//
//	watch:
//	  debounce: 500ms
//	  poll: "@every 1m"
//
//	cache:
//	  enabled: true
//
//	telemetry:
//	  logging:
//	    level: warn
//	    format: text
//	  metrics:
//	    enabled: true
//	    textfile: /var/lib/node_exporter/omg.prom
package config
