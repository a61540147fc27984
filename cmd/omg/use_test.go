package main

import (
	"path/filepath"
	"strings"
	"testing"

	"omg-hq/omg/pkg/config"
)

func TestUseCommand(t *testing.T) {
	cfgPath := testConfigPath(t)
	bundleDir := t.TempDir()

	code, stdout, stderr := runOmg(t, cfgPath, "use", bundleDir)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, bundleDir) {
		t.Errorf("stdout = %q, want the bundle path", stdout)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Bundle.Path != bundleDir {
		t.Errorf("bundle.path = %q, want %q", cfg.Bundle.Path, bundleDir)
	}
}

func TestUseCommand_KeepsExistingSettings(t *testing.T) {
	cfgPath := testConfigPath(t)
	writeSnapshot(t, cfgPath, "output:\n  format: json\n", testTime)
	t.Setenv("OMG_BUNDLE_WORKERS", "16")

	if code, _, stderr := runOmg(t, cfgPath, "use", t.TempDir(), "--no-warn"); code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("output.format = %q, want json", cfg.Output.Format)
	}
	if cfg.Bundle.Workers != config.DefaultBundleWorkers {
		t.Errorf("bundle.workers = %d, environment override should not be saved", cfg.Bundle.Workers)
	}
	if !cfg.Loader.PrintWarnings {
		t.Error("loader.print_warnings = false, --no-warn should not be saved")
	}
}

func TestUseCommand_RelativePath(t *testing.T) {
	cfgPath := testConfigPath(t)
	t.Chdir(t.TempDir())

	if code, _, stderr := runOmg(t, cfgPath, "use", "."); code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr: %s", code, stderr)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if !filepath.IsAbs(cfg.Bundle.Path) {
		t.Errorf("bundle.path = %q, want an absolute path", cfg.Bundle.Path)
	}
}

func TestUseCommand_Invalid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "pods.yaml")
	writeSnapshot(t, file, "kind: Pod\n", testTime)

	tests := []struct {
		name string
		arg  string
	}{
		{"missing directory", filepath.Join(t.TempDir(), "missing")},
		{"regular file", file},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, _, _ := runOmg(t, testConfigPath(t), "use", tt.arg); code != 1 {
				t.Errorf("exit code = %d, want 1", code)
			}
		})
	}
}
