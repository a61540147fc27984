// Package age computes the relative age of objects captured in a must-gather
// bundle.
//
// The age of an object is the difference between the time it reports for an
// event (usually metadata.creationTimestamp) and the time its snapshot was
// captured (usually the modification time of the YAML file holding it).
//
// # Instants
//
// Two representations are accepted, selected by a Kind tag:
//
//   - KindISO: ISO-8601 text such as "2020-06-04T22:10:41Z". Timezone markers
//     are ignored and the wall clock is read as UTC.
//   - KindEpoch: seconds since the Unix epoch, e.g. 1590912494.0.
//
// # Output
//
// The display string favours the coarsest non-zero unit and keeps one
// sub-unit while the leading unit is below ten:
//
//	age.Age("2020-06-04T20:00:00Z", 1591336800.0, age.KindISO, age.KindEpoch) // "10h"
//	age.Age("2020-06-04T20:00:00Z", "2020-06-04T20:05:30Z", age.KindISO, age.KindISO) // "5m30s"
//
// Any input that cannot be parsed yields the string "Unknown". Compute returns
// the same outcome as a Result for callers that need to branch on it.
package age
