package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"omg-hq/omg/pkg/cli"
	"omg-hq/omg/pkg/snapshot"
	"omg-hq/omg/pkg/telemetry/logging"
)

var loadFlags struct {
	output string
}

var loadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Parse a snapshot and print it",
	Long: `Parse a single must-gather snapshot and print the resulting document.

If the file does not parse, trailing lines are dropped one at a time until it
does, and a [WARN] line reports how many were skipped. If no prefix parses,
an [ERROR] line is printed and omg exits with status 1.

Examples:
  # Print as YAML
  omg load namespaces/default/core/pods.yaml

  # Print as JSON
  omg load namespaces/default/core/pods.yaml -o json

  # Suppress the [WARN]/[ERROR] lines
  omg load pods.yaml --no-warn`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVarP(&loadFlags.output, "output", "o", "yaml", "output format: yaml, json")
}

func runLoad(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(loadFlags.output)
	if err != nil {
		return err
	}
	if format != cli.FormatYAML && format != cli.FormatJSON {
		return fmt.Errorf("load supports yaml and json output, got %q", format)
	}

	path := args[0]
	log := current.logger.WithContext(logging.WithDocument(current.ctx, path))

	res, err := current.newLoader(cmd.ErrOrStderr()).LoadFile(path)
	if err != nil {
		log.Debug("Snapshot load failed", "error", err)
		return current.loadFailure(err)
	}
	log.Debug("Snapshot loaded",
		"lines_total", res.LinesTotal,
		"lines_skipped", res.LinesSkipped,
	)

	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), snapshot.Normalize(res.Tree))
}
