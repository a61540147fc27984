package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"omg-hq/omg/pkg/config"
)

var useCmd = &cobra.Command{
	Use:   "use <dir>",
	Short: "Select the must-gather bundle for later commands",
	Long: `Store the bundle directory in the omg configuration file so that later
commands (such as "omg ages") can be run without naming it.

Examples:
  omg use ./must-gather.local.5243
  omg use /tmp/mg --config ./omg.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runUse,
}

func init() {
	rootCmd.AddCommand(useCmd)
}

func runUse(cmd *cobra.Command, args []string) error {
	dir, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", args[0], err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to access bundle: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	// Start from the file itself so flag and environment overrides are not
	// persisted.
	cfg, err := config.LoadConfig(cfgFile)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.Default(), nil
	}
	if err != nil {
		return err
	}

	cfg.Bundle.Path = dir
	if err := config.Save(cfg, cfgFile); err != nil {
		return err
	}
	current.cfg.Bundle.Path = dir

	current.logger.Info("Bundle selected", "bundle", dir, "config", cfgFile)
	fmt.Fprintf(cmd.OutOrStdout(), "Using: %s\n", dir)
	return nil
}
