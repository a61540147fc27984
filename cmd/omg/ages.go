package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"omg-hq/omg/pkg/bundle"
	"omg-hq/omg/pkg/cache"
	"omg-hq/omg/pkg/cli"
	"omg-hq/omg/pkg/telemetry/health"
	"omg-hq/omg/pkg/telemetry/logging"
)

var agesFlags struct {
	output      string
	watch       bool
	progress    bool
	metricsAddr string
	poll        string
	cache       bool
}

var agesCmd = &cobra.Command{
	Use:   "ages [dir]",
	Short: "Print the age of every object in a bundle",
	Long: `Load every snapshot in a must-gather bundle and print the age of each object
it contains, measured from metadata.creationTimestamp to the time the snapshot
file was written.

The bundle defaults to the one selected with "omg use". List documents
(PodList, List, ...) are expanded into their items. A snapshot that cannot be
parsed at all stops the listing with exit status 1.

Examples:
  # Ages in the selected bundle
  omg ages

  # Ages in a given directory as JSON
  omg ages ./must-gather.local.5243 -o json

  # Keep the listing current while a bundle is being extracted
  omg ages --watch --metrics-addr :9090

  # Poll a bundle on an NFS mount every minute, reusing cached results
  omg ages --watch --poll "@every 1m" --cache`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAges,
}

func init() {
	rootCmd.AddCommand(agesCmd)

	agesCmd.Flags().StringVarP(&agesFlags.output, "output", "o", "", "output format: table, json, yaml (default from config)")
	agesCmd.Flags().BoolVarP(&agesFlags.watch, "watch", "w", false, "re-inspect the bundle when snapshots change")
	agesCmd.Flags().BoolVar(&agesFlags.progress, "progress", false, "show a progress bar on stderr")
	agesCmd.Flags().StringVar(&agesFlags.poll, "poll", "", "cron schedule for re-inspecting while watching, e.g. \"@every 30s\" (default from config)")
	agesCmd.Flags().BoolVar(&agesFlags.cache, "cache", false, "reuse the results of unchanged snapshots from the inspection cache")
	agesCmd.Flags().StringVar(&agesFlags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics and health endpoints on this address while watching")
}

// ageTable renders inspection results as a table.
type ageTable []bundle.ObjectAge

func (t ageTable) Header() []string {
	return []string{"Namespace", "Kind", "Name", "Age"}
}

func (t ageTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, o := range t {
		rows = append(rows, []string{o.Namespace, o.Kind, o.Name, o.Age})
	}
	return rows
}

func runAges(cmd *cobra.Command, args []string) error {
	cfg := current.cfg

	root := cfg.Bundle.Path
	if len(args) == 1 {
		root = args[0]
	}
	if root == "" {
		return cli.NewExitError(1, cli.NewConfigError("bundle.path",
			`no bundle selected: run "omg use <dir>" or pass a directory`))
	}

	outputName := agesFlags.output
	if outputName == "" {
		outputName = cfg.Output.Format
	}
	format, err := cli.ParseOutputFormat(outputName)
	if err != nil {
		return err
	}

	if agesFlags.metricsAddr != "" {
		cfg.Telemetry.Metrics.Enabled = true
	}
	if agesFlags.cache {
		cfg.Cache.Enabled = true
	}
	if agesFlags.poll != "" {
		if err := bundle.ParseSchedule(agesFlags.poll); err != nil {
			return err
		}
		cfg.Watch.Poll = agesFlags.poll
	}

	ctx := logging.WithBundle(current.ctx, root)
	log := current.logger.WithContext(ctx)

	inspectionCache := openCache()
	if inspectionCache != nil {
		defer inspectionCache.Close()
	}

	// The watcher and the poll schedule may fire together.
	var renderMu sync.Mutex
	render := func() error {
		renderMu.Lock()
		defer renderMu.Unlock()

		objects, err := inspectBundle(ctx, root, cmd.ErrOrStderr(), inspectionCache)
		if err != nil {
			return err
		}
		return printAges(cmd.OutOrStdout(), cmd.ErrOrStderr(), format, objects)
	}

	if !agesFlags.watch {
		if err := render(); err != nil {
			return current.loadFailure(err)
		}
		return nil
	}

	var last lastInspection
	tracked := func() error {
		err := render()
		last.set(err)
		return err
	}
	if err := tracked(); err != nil {
		log.Error("Bundle inspection failed", "error", err)
	}

	return watchBundle(ctx, root, tracked, &last)
}

// lastInspection holds the outcome of the most recent inspection in watch mode.
type lastInspection struct {
	mu  sync.RWMutex
	err error
	at  time.Time
}

func (l *lastInspection) set(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.err = err
	l.at = time.Now()
}

// check reports the last inspection error to the readiness endpoint.
func (l *lastInspection) check(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.at.IsZero() {
		return errors.New("bundle not inspected yet")
	}
	return l.err
}

// openCache opens the inspection cache when it is enabled. A cache that
// cannot be opened only costs speed, so the failure is logged and nil is
// returned.
func openCache() *cache.SQLiteCache {
	cfg := current.cfg
	if !cfg.Cache.Enabled {
		return nil
	}

	c, err := cache.Open(cache.Config{Path: cfg.Cache.Path}, current.logger.Slog())
	if err != nil {
		current.logger.Warn("Inspection cache disabled", "path", cfg.Cache.Path, "error", err)
		return nil
	}
	return c
}

func inspectBundle(ctx context.Context, root string, stderr io.Writer, c *cache.SQLiteCache) ([]bundle.ObjectAge, error) {
	cfg := current.cfg

	paths, err := bundle.Discover(root, bundle.DiscoverOptions{
		Extensions: cfg.Bundle.Extensions,
		SkipHidden: cfg.Bundle.SkipHidden,
	})
	if err != nil {
		return nil, err
	}

	opts := bundle.InspectorOptions{
		Loader:  current.newLoader(stderr),
		Workers: cfg.Bundle.Workers,
		Logger:  current.logger.Slog(),
		Metrics: current.metrics,
	}
	if c != nil {
		opts.Cache = c
	}

	var progress cli.ProgressReporter
	if agesFlags.progress && len(paths) > 0 {
		progress = cli.NewProgressReporter(stderr, "Inspecting")
		progress.Start(int64(len(paths)))
		opts.Progress = func(done, total int) {
			progress.Update(int64(done))
		}
	}

	objects, err := bundle.NewInspector(opts).Inspect(ctx, paths)
	if progress != nil {
		if err != nil {
			progress.Error(err)
		} else {
			progress.Finish()
		}
	}
	return objects, err
}

func printAges(stdout, stderr io.Writer, format cli.OutputFormat, objects []bundle.ObjectAge) error {
	switch format {
	case cli.FormatJSON, cli.FormatYAML:
		if objects == nil {
			objects = []bundle.ObjectAge{}
		}
		return cli.NewFormatter(format).FormatTo(stdout, objects)
	default:
		if len(objects) == 0 {
			fmt.Fprintln(stderr, "No resources found.")
			return nil
		}
		return cli.NewFormatter(cli.FormatTable).FormatTo(stdout, ageTable(objects))
	}
}

func watchBundle(ctx context.Context, root string, render func() error, last *lastInspection) error {
	cfg := current.cfg

	watcher, err := bundle.NewWatcher(&bundle.WatcherConfig{
		Path:       root,
		Debounce:   cfg.Watch.Debounce,
		Extensions: cfg.Bundle.Extensions,
		SkipHidden: cfg.Bundle.SkipHidden,
	}, current.logger.Slog())
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Stop() }()

	scheduler := bundle.NewScheduler(cfg.Watch.Poll, current.logger.Slog())
	if err := scheduler.Start(ctx, render); err != nil {
		return err
	}
	defer scheduler.Stop()
	if next := scheduler.NextRun(); next != nil {
		current.logger.Info("Polling bundle", "schedule", cfg.Watch.Poll, "next_run", next.Format(time.RFC3339))
	}

	if agesFlags.metricsAddr != "" {
		stopServer := serveMetrics(agesFlags.metricsAddr, newBundleChecker(root, last, scheduler))
		defer stopServer()
	}

	return watcher.Watch(ctx, render)
}

// newBundleChecker reports the watched bundle ready while its root is
// readable and the last inspection succeeded. When a poll schedule is
// running it must keep running.
func newBundleChecker(root string, last *lastInspection, scheduler *bundle.Scheduler) *health.Checker {
	checker := health.New(0)
	checker.RegisterCheck("bundle", func(ctx context.Context) error {
		_, err := os.Stat(root)
		return err
	})
	checker.RegisterCheck("inspection", last.check)
	if scheduler != nil && scheduler.IsRunning() {
		checker.RegisterCheck("poll", func(ctx context.Context) error {
			if !scheduler.IsRunning() {
				return errors.New("poll scheduler stopped")
			}
			return nil
		})
	}
	return checker
}

// serveMetrics exposes the collector and the health endpoints on addr until
// the returned function is called.
func serveMetrics(addr string, checker *health.Checker) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", current.metrics.Handler())
	health.Register(mux, checker)

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		current.logger.Info("Serving metrics", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			current.logger.Error("Metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}
}
