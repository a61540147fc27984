// Package cache persists bundle inspections in SQLite so that repeated
// "omg ages" runs over a large must-gather only load the documents that
// changed.
//
// An entry is keyed by document path and is valid while the document's
// size and modification time are unchanged. Ages are measured against the
// modification time, so a valid entry always holds the ages a fresh load
// would compute.
//
// # Usage
//
//	c, err := cache.Open(cache.Config{Path: cfg.Cache.Path}, logger)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	inspector := bundle.NewInspector(bundle.InspectorOptions{Cache: c})
//
// The database uses the pure-Go modernc.org/sqlite driver in WAL mode, so
// several omg processes can share one cache file.
package cache
