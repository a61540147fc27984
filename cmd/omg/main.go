// omg inspects OpenShift must-gather bundles offline.
//
// A must-gather is a directory of YAML snapshots captured from a cluster.
// omg loads them even when a capture was cut short, and reports the age of
// every object relative to the moment it was captured.
//
// Usage:
//
//	# Select the bundle used by later commands
//	omg use ./must-gather.local.5243
//
//	# Ages of every object in the selected bundle
//	omg ages
//
//	# Age between two instants
//	omg age 2020-06-04T20:00:00Z 1591308000 --ts2-type epoch
//
//	# Print a single snapshot, recovering from a truncated tail
//	omg load namespaces/default/core/pods.yaml -o json
//
//	# Show version information
//	omg version
package main

import "os"

func main() {
	os.Exit(Execute())
}
