// Package snapshot loads the YAML documents captured in a must-gather bundle.
//
// Capture tooling occasionally leaves trailing garbage at the end of a
// document (partial writes, truncated output). The Loader first attempts a
// strict parse of the whole document. When that fails it drops lines from the
// end, one at a time, and parses again until the remaining prefix loads or a
// single line is left.
//
// # Usage
//
//	loader := snapshot.NewLoader(snapshot.Options{PrintWarnings: true})
//	res, err := loader.LoadFile("namespaces/default/core/pods.yaml")
//	if errors.Is(err, snapshot.ErrUnrecoverable) {
//		// the document is unusable, abort the run
//	}
//	name := snapshot.LookupString(res.Tree, "metadata", "name")
//
// # Diagnostics
//
// With PrintWarnings set, a recovered document produces one line on the
// diagnostics writer (stderr by default):
//
//	[WARN] Skipped 3/120 lines from the end of pods.yaml to the load the yaml file properly
//
// and an unrecoverable one produces:
//
//	[ERROR] Invalid yaml file. Parsing error in namespaces/default/core/pods.yaml
//
// # Safety
//
// Documents are decoded into plain maps, slices and scalars with
// gopkg.in/yaml.v3. No tags are resolved to Go types and nothing in the
// document can instantiate objects or run code.
package snapshot
