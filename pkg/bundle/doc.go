// Package bundle inspects must-gather bundles.
//
// A bundle is a directory tree of YAML snapshots captured from a cluster.
// Discover lists the snapshot documents under a root, Inspector loads them
// concurrently with the resilient snapshot loader and reports the age of
// every object. Watcher re-runs an inspection when the tree changes and
// Scheduler re-runs it on a cron schedule.
//
// An Inspector may be given a Cache. Documents whose size and modification
// time are unchanged are then served from it without being parsed.
//
// # Ages
//
// An object's age is measured from metadata.creationTimestamp to the
// modification time of the file it was captured in, which is the closest
// record of when the snapshot was taken. Objects without a parseable
// timestamp report "Unknown".
//
// # Usage
//
//	paths, err := bundle.Discover(root, bundle.DefaultDiscoverOptions())
//	if err != nil {
//		return err
//	}
//	inspector := bundle.NewInspector(bundle.InspectorOptions{Loader: loader, Workers: 8})
//	objects, err := inspector.Inspect(ctx, paths)
package bundle
