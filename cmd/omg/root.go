package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"omg-hq/omg/pkg/cli"
	"omg-hq/omg/pkg/config"
	"omg-hq/omg/pkg/snapshot"
	"omg-hq/omg/pkg/telemetry/logging"
	"omg-hq/omg/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	noWarn  bool
)

// app holds what every command needs once configuration has been loaded.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
	ctx     context.Context
}

// current is set by the root PersistentPreRunE.
var current *app

var rootCmd = &cobra.Command{
	Use:   "omg",
	Short: "omg - offline must-gather inspector",
	Long: `omg reads the YAML snapshots of an OpenShift must-gather bundle.

Snapshots are often truncated when a capture is interrupted. omg drops
trailing lines until the document parses and reports how many it skipped,
so partial captures stay usable.

Configuration is read from ~/.omg.yaml and OMG_* environment variables.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	ctx, stop := cli.SetupSignalHandler(ctx)
	defer stop()

	current = nil
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)

	if current != nil {
		if werr := current.metrics.WriteTextfile(current.cfg.Telemetry.Metrics.Textfile); werr != nil {
			current.logger.Warn("Failed to export metrics", "error", werr)
		}
	}

	if err != nil && !cli.IsSilent(err) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return cli.ExitCode(err)
}

// setup loads configuration and builds the logger and metrics collector.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewExitError(2, cli.NewConfigError(cfgFile, err.Error()))
	}
	if noWarn {
		cfg.Loader.PrintWarnings = false
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging)
	if verbose {
		logCfg.Level = "debug"
	}
	logCfg.Writer = cmd.ErrOrStderr()
	logger, err := logging.New(logCfg)
	if err != nil {
		return cli.NewExitError(2, err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithRunID(ctx, logging.NewRunID())
	ctx = logging.WithCommand(ctx, cmd.Name())

	current = &app{
		cfg:     cfg,
		logger:  logger.WithContext(ctx),
		metrics: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
		ctx:     ctx,
	}
	current.logger.Debug("Configuration loaded", "config", cfgFile)
	return nil
}

// newLoader returns a snapshot loader wired to the app's diagnostics,
// logger and metrics.
func (a *app) newLoader(diagnostics io.Writer) *snapshot.Loader {
	return snapshot.NewLoader(snapshot.Options{
		PrintWarnings: a.cfg.Loader.PrintWarnings,
		Diagnostics:   diagnostics,
		Logger:        a.logger.Slog(),
		Metrics:       a.metrics,
	})
}

// loadFailure maps a snapshot error to the command's exit status. The
// loader has already printed the [ERROR] line when warnings are on.
func (a *app) loadFailure(err error) error {
	if errors.Is(err, snapshot.ErrUnrecoverable) && a.cfg.Loader.PrintWarnings {
		return cli.NewSilentExitError(1, err)
	}
	return cli.NewExitError(1, err)
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noWarn, "no-warn", false, "do not print [WARN]/[ERROR] lines for damaged snapshots")
}
