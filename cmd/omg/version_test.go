package main

import (
	"strings"
	"testing"
)

func TestVersionDefaults(t *testing.T) {
	origVersion := Version
	origGitCommit := GitCommit
	origBuildDate := BuildDate
	defer func() {
		Version = origVersion
		GitCommit = origGitCommit
		BuildDate = origBuildDate
	}()

	Version = "0.1.0-test"
	GitCommit = "abc123"
	BuildDate = "2026-10-19"

	code, stdout, _ := runOmg(t, testConfigPath(t), "version")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	for _, want := range []string{"omg 0.1.0-test", "Git Commit: abc123", "Build Date: 2026-10-19", "Go Version:"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("version output missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionCommandExists(t *testing.T) {
	if versionCmd == nil {
		t.Fatal("versionCmd is nil")
	}

	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}

	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}

	if versionCmd.Run == nil {
		t.Error("versionCmd.Run should not be nil")
	}
}

func TestVersionIgnoresBrokenConfig(t *testing.T) {
	cfgPath := testConfigPath(t)
	writeSnapshot(t, cfgPath, "output: [\n", testTime)

	if code, _, stderr := runOmg(t, cfgPath, "version"); code != 0 {
		t.Errorf("exit code = %d, want 0; stderr: %s", code, stderr)
	}
}
