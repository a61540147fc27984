package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the name of the configuration file in the user's home directory.
const DefaultFileName = ".omg.yaml"

// DefaultPath returns the default configuration file path (~/.omg.yaml).
// It falls back to the working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, DefaultFileName)
}

// LoadConfig loads configuration from a YAML file at the specified path.
// Fields absent from the file keep their default values. The configuration
// is validated before it is returned.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention OMG_SECTION_FIELD (e.g., OMG_BUNDLE_PATH).
// Environment variables always take precedence over file-based configuration.
//
// A missing file is not an error: the defaults are used instead, so omg works
// before "omg use" has written a configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as YAML, creating parent directories as needed.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return fmt.Errorf("refusing to save invalid configuration: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create configuration directory %q: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration file %q: %w", path, err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Unparseable values are ignored.
func applyEnvOverrides(cfg *Config) {
	// Bundle overrides
	if val := os.Getenv("OMG_BUNDLE_PATH"); val != "" {
		cfg.Bundle.Path = val
	}
	if val := os.Getenv("OMG_BUNDLE_EXTENSIONS"); val != "" {
		var exts []string
		for _, ext := range strings.Split(val, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				exts = append(exts, ext)
			}
		}
		cfg.Bundle.Extensions = exts
	}
	if val := os.Getenv("OMG_BUNDLE_SKIP_HIDDEN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Bundle.SkipHidden = b
		}
	}
	if val := os.Getenv("OMG_BUNDLE_WORKERS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Bundle.Workers = i
		}
	}

	// Loader overrides
	if val := os.Getenv("OMG_LOADER_PRINT_WARNINGS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Loader.PrintWarnings = b
		}
	}

	// Output overrides
	if val := os.Getenv("OMG_OUTPUT_FORMAT"); val != "" {
		cfg.Output.Format = val
	}

	// Watch overrides
	if val := os.Getenv("OMG_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}

	if val := os.Getenv("OMG_WATCH_POLL"); val != "" {
		cfg.Watch.Poll = val
	}

	// Cache overrides
	if val := os.Getenv("OMG_CACHE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if val := os.Getenv("OMG_CACHE_PATH"); val != "" {
		cfg.Cache.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("OMG_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("OMG_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("OMG_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("OMG_TELEMETRY_METRICS_TEXTFILE"); val != "" {
		cfg.Telemetry.Metrics.Textfile = val
	}
}
