package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"
	"omg-hq/omg/pkg/cache"
)

const defaultPruneAge = 30 * 24 * time.Hour

var cacheFlags struct {
	olderThan time.Duration
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the inspection cache",
	Long: `The inspection cache stores the objects of snapshots that loaded cleanly,
keyed by path, size and modification time. "omg ages --cache" (or
cache.enabled in the configuration) serves unchanged snapshots from it.`,
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the cache location and size",
	Args:  cobra.NoArgs,
	RunE:  runCacheInfo,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete cache entries recorded before a cutoff",
	Long: `Delete cache entries recorded more than --older-than ago.
Use --older-than 0 to empty the cache.

Examples:
  omg cache prune
  omg cache prune --older-than 168h`,
	Args: cobra.NoArgs,
	RunE: runCachePrune,
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheInfoCmd)
	cacheCmd.AddCommand(cachePruneCmd)

	cachePruneCmd.Flags().DurationVar(&cacheFlags.olderThan, "older-than", defaultPruneAge, "delete entries recorded before this long ago")
}

func runCacheInfo(cmd *cobra.Command, args []string) error {
	path := current.cfg.Cache.Path
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Path:    %s\n", path)
	fmt.Fprintf(out, "Enabled: %t\n", current.cfg.Cache.Enabled)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(out, "Entries: 0")
		return nil
	}

	c, err := cache.Open(cache.Config{Path: path}, current.logger.Slog())
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.Len(current.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Entries: %d\n", n)
	return nil
}

func runCachePrune(cmd *cobra.Command, args []string) error {
	if cacheFlags.olderThan < 0 {
		return fmt.Errorf("--older-than must not be negative")
	}

	path := current.cfg.Cache.Path
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(cmd.OutOrStdout(), "Pruned 0 entries")
		return nil
	}

	c, err := cache.Open(cache.Config{Path: path}, current.logger.Slog())
	if err != nil {
		return err
	}
	defer c.Close()

	n, err := c.Prune(current.ctx, time.Now().Add(-cacheFlags.olderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d entries\n", n)
	return nil
}
