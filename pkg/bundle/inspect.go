package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"omg-hq/omg/pkg/age"
	"omg-hq/omg/pkg/snapshot"

	"golang.org/x/sync/errgroup"
)

// ObjectAge is one object found in a bundle with its computed age.
type ObjectAge struct {
	Path      string `json:"path" yaml:"path"`
	Kind      string `json:"kind" yaml:"kind"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string `json:"name" yaml:"name"`
	Created   string `json:"created,omitempty" yaml:"created,omitempty"`
	Age       string `json:"age" yaml:"age"`
}

// AgeRecorder receives one observation per computed age.
type AgeRecorder interface {
	RecordAge(known bool)
}

// CacheRecorder receives one observation per cache lookup.
type CacheRecorder interface {
	RecordCacheLookup(hit bool)
}

// FileKey identifies one version of a snapshot document. Ages are measured
// against the modification time, so a document whose key is unchanged
// yields the same objects.
type FileKey struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Cache stores the objects of documents that loaded cleanly.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the objects stored for key. The bool is false when no
	// entry matches the path, size and modification time.
	Get(ctx context.Context, key FileKey) ([]ObjectAge, bool, error)

	// Put stores objects for key, replacing any entry for the same path.
	Put(ctx context.Context, key FileKey, objects []ObjectAge) error
}

// InspectorOptions configures an Inspector.
type InspectorOptions struct {
	// Loader parses the documents (default: a loader with warnings enabled).
	Loader *snapshot.Loader

	// Workers bounds the number of documents loaded at once
	// (default: runtime.GOMAXPROCS).
	Workers int

	// Logger receives structured events (default: discarded).
	Logger *slog.Logger

	// Metrics is optional. If it also implements CacheRecorder, cache
	// lookups are recorded too.
	Metrics AgeRecorder

	// Cache is optional. Documents that needed lines dropped are never
	// cached, so their [WARN] line is printed on every run.
	Cache Cache

	// Progress is called after each document with the number of documents
	// done so far. It may be called from several goroutines.
	Progress func(done, total int)
}

// Inspector loads bundle documents and reports object ages.
type Inspector struct {
	opts InspectorOptions
}

// NewInspector creates an Inspector with the given options.
func NewInspector(opts InspectorOptions) *Inspector {
	if opts.Loader == nil {
		opts.Loader = snapshot.NewLoader(snapshot.Options{PrintWarnings: true})
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Inspector{opts: opts}
}

// Inspect loads every path and returns the objects they hold, ordered by
// path and then by position within the document.
//
// The first document that cannot be loaded aborts the inspection; the
// error wraps snapshot.ErrUnrecoverable when the document was unparseable.
// Documents not yet handed to the loader are skipped once the inspection is
// aborted, but workers already parsing may each report their own failure.
func (in *Inspector) Inspect(ctx context.Context, paths []string) ([]ObjectAge, error) {
	perPath := make([][]ObjectAge, len(paths))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.opts.Workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			objects, err := in.inspectFile(ctx, path)
			if err != nil {
				return err
			}
			perPath[i] = objects

			if in.opts.Progress != nil {
				in.opts.Progress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var objects []ObjectAge
	for _, list := range perPath {
		objects = append(objects, list...)
	}

	in.opts.Logger.Info("Bundle inspected",
		"documents", len(paths),
		"objects", len(objects),
	)
	return objects, nil
}

// InspectFile loads a single document and returns the objects it holds.
func (in *Inspector) InspectFile(ctx context.Context, path string) ([]ObjectAge, error) {
	return in.inspectFile(ctx, path)
}

func (in *Inspector) inspectFile(ctx context.Context, path string) ([]ObjectAge, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot %q: %w", path, err)
	}
	key := FileKey{Path: path, Size: info.Size(), ModTime: info.ModTime()}

	if objects, ok := in.cached(ctx, key); ok {
		return objects, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := in.opts.Loader.LoadFile(path)
	if err != nil {
		return nil, err
	}

	objects := in.collect(path, res.Tree, key.ModTime)

	if in.opts.Cache != nil && !res.Recovered() {
		if err := in.opts.Cache.Put(ctx, key, objects); err != nil {
			in.opts.Logger.Warn("Failed to cache inspection", "document", path, "error", err)
		}
	}
	return objects, nil
}

// cached returns the stored objects for key. Cache failures are logged and
// treated as misses.
func (in *Inspector) cached(ctx context.Context, key FileKey) ([]ObjectAge, bool) {
	if in.opts.Cache == nil {
		return nil, false
	}

	objects, ok, err := in.opts.Cache.Get(ctx, key)
	if err != nil {
		in.opts.Logger.Warn("Inspection cache lookup failed", "document", key.Path, "error", err)
		ok = false
	}
	if recorder, isRecorder := in.opts.Metrics.(CacheRecorder); isRecorder {
		recorder.RecordCacheLookup(ok)
	}
	if !ok {
		return nil, false
	}

	if in.opts.Metrics != nil {
		for _, o := range objects {
			in.opts.Metrics.RecordAge(o.Age != age.Unknown)
		}
	}
	in.opts.Logger.Debug("Inspection cache hit", "document", key.Path, "objects", len(objects))
	return objects, true
}

// collect extracts the objects held by a loaded document.
func (in *Inspector) collect(path string, tree snapshot.Tree, captured time.Time) []ObjectAge {
	var objects []ObjectAge
	for _, item := range snapshot.Items(tree) {
		if !isMapping(item) {
			continue
		}

		created, _ := snapshot.Lookup(item, "metadata", "creationTimestamp")
		result := age.ComputeSince(created, captured)
		if in.opts.Metrics != nil {
			in.opts.Metrics.RecordAge(result.Known)
		}
		if !result.Known {
			in.opts.Logger.Debug("Age unknown",
				"document", path,
				"name", snapshot.LookupString(item, "metadata", "name"),
				"error", result.Err,
			)
		}

		objects = append(objects, ObjectAge{
			Path:      path,
			Kind:      snapshot.LookupString(item, "kind"),
			Namespace: snapshot.LookupString(item, "metadata", "namespace"),
			Name:      snapshot.LookupString(item, "metadata", "name"),
			Created:   snapshot.LookupString(item, "metadata", "creationTimestamp"),
			Age:       result.String(),
		})
	}

	return objects
}

func isMapping(t snapshot.Tree) bool {
	switch t.(type) {
	case map[string]any, map[any]any:
		return true
	default:
		return false
	}
}
