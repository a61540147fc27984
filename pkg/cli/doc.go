/*
Package cli provides command-line interface utilities for omg.

The cli package includes output formatters, progress reporters, exit-status
errors and signal handling used by the omg command.

Output Formatting:

Results can be rendered as text, JSON, YAML or, for data implementing
TableData, an aligned table:

	formatter := cli.NewFormatter(cli.FormatTable)
	if err := formatter.FormatTo(os.Stdout, rows); err != nil {
		return err
	}

Progress Reporting:

For long inspections, use the progress reporter. It writes to stderr by
default so that stdout only carries results:

	progress := cli.NewProgressReporter(nil, "Inspecting")
	progress.Start(int64(len(paths)))
	...
	progress.Update(int64(done))
	progress.Finish()

Exit Status:

Commands return an ExitError to choose the process exit status; main calls
ExitCode on the error returned by the command tree.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()
*/
package cli
