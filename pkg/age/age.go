package age

import (
	"strconv"
	"time"
)

// Unknown is returned in place of an age when either instant cannot be parsed.
const Unknown = "Unknown"

const day = 24 * time.Hour

// Breakdown is the elapsed time between two instants split into whole units.
// Days counts every elapsed calendar day; months and years are never folded out.
type Breakdown struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Between returns the breakdown of to minus from. A negative delta is clamped
// to the zero breakdown.
func Between(from, to Instant) Breakdown {
	// Instants are naive UTC, so every calendar day is exactly 24h long.
	d := to.t.Sub(from.t)
	if d <= 0 {
		return Breakdown{}
	}

	// time.Duration saturates at ~292 years; count whole days on the calendar
	// first so far-apart instants still produce the right day count.
	days := calendarDays(from.t, to.t)
	rest := to.t.Sub(from.t.AddDate(0, 0, days))

	return Breakdown{
		Days:    days,
		Hours:   int(rest / time.Hour),
		Minutes: int(rest % time.Hour / time.Minute),
		Seconds: int(rest % time.Minute / time.Second),
	}
}

// calendarDays returns the number of whole days between from and to (to >= from).
func calendarDays(from, to time.Time) int {
	y1, m1, d1 := from.Date()
	y2, m2, d2 := to.Date()
	start := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)

	days := int(end.Unix()-start.Unix()) / int(day/time.Second)
	if from.AddDate(0, 0, days).After(to) {
		days--
	}
	return days
}

// Format renders b using the first matching bucket:
// days, hours alone above nine, hours with minutes, minutes alone above nine,
// minutes with seconds, and finally seconds.
func Format(b Breakdown) string {
	switch {
	case b.Days > 0:
		return strconv.Itoa(b.Days) + "d"
	case b.Hours > 9:
		return strconv.Itoa(b.Hours) + "h"
	case b.Hours > 0:
		return strconv.Itoa(b.Hours) + "h" + strconv.Itoa(b.Minutes) + "m"
	case b.Minutes > 9:
		return strconv.Itoa(b.Minutes) + "m"
	case b.Minutes > 0:
		return strconv.Itoa(b.Minutes) + "m" + strconv.Itoa(b.Seconds) + "s"
	default:
		return strconv.Itoa(b.Seconds) + "s"
	}
}

// Result is the outcome of an age computation.
type Result struct {
	Breakdown Breakdown
	// Known is false when either instant failed to parse.
	Known bool
	// Err holds the parse failure when Known is false.
	Err error
}

// String returns the display form of r, or Unknown.
func (r Result) String() string {
	if !r.Known {
		return Unknown
	}
	return Format(r.Breakdown)
}

// Compute parses both values and returns the age of v1 as seen from v2.
// It never panics; parse failures are reported through Result.Known.
func Compute(v1, v2 any, k1, k2 Kind) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{}
		}
	}()

	from, err := ParseInstant(v1, k1)
	if err != nil {
		return Result{Err: err}
	}
	to, err := ParseInstant(v2, k2)
	if err != nil {
		return Result{Err: err}
	}

	return Result{Breakdown: Between(from, to), Known: true}
}

// Age returns the display age of v1 relative to v2, or Unknown.
func Age(v1, v2 any, k1, k2 Kind) string {
	return Compute(v1, v2, k1, k2).String()
}

// Since returns the age of an ISO creation timestamp relative to the time
// a snapshot was captured.
func Since(created string, captured time.Time) string {
	return ComputeSince(created, captured).String()
}

// ComputeSince is Since returning the full Result.
func ComputeSince(created any, captured time.Time) Result {
	return Compute(created, epoch(captured), KindISO, KindEpoch)
}

func epoch(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
