package age

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind selects how an instant value is interpreted.
type Kind string

const (
	// KindISO is ISO-8601-like text, e.g. "2020-06-04T22:10:41Z".
	KindISO Kind = "iso"
	// KindEpoch is a number of seconds since the Unix epoch, e.g. 1590912494.0.
	KindEpoch Kind = "epoch"
)

var (
	// ErrInvalidFormat is returned when ISO text cannot be parsed.
	ErrInvalidFormat = errors.New("invalid timestamp format")

	// ErrOutOfRange is returned for epoch values that do not map to a year in 1..9999.
	ErrOutOfRange = errors.New("timestamp out of range")

	// ErrUnsupportedKind is returned for unknown kind tags or value types
	// that do not match the kind.
	ErrUnsupportedKind = errors.New("unsupported timestamp kind")
)

// ParseKind converts a textual tag into a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "iso", "iso8601", "iso-8601":
		return KindISO, nil
	case "epoch", "unix":
		return KindEpoch, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
	}
}

// Instant is a point in time held as a naive UTC wall clock.
type Instant struct {
	t time.Time
}

// NewInstant returns the Instant for t. The wall clock of t is kept as is and
// its location is replaced with UTC.
func NewInstant(t time.Time) Instant {
	return Instant{t: wallClockUTC(t)}
}

// Time returns the instant as a UTC time.Time.
func (i Instant) Time() time.Time {
	return i.t
}

// String implements fmt.Stringer.
func (i Instant) String() string {
	return i.t.Format(time.RFC3339Nano)
}

// isoLayouts are tried in order. Layouts with a zone accept "Z" and numeric
// offsets; the zone is discarded afterwards.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z0700",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102",
}

// ParseInstant parses value according to kind.
func ParseInstant(value any, kind Kind) (Instant, error) {
	switch kind {
	case KindISO:
		s, ok := value.(string)
		if !ok {
			return Instant{}, fmt.Errorf("%w: iso value must be text, got %T", ErrUnsupportedKind, value)
		}
		return parseISO(s)
	case KindEpoch:
		secs, err := epochSeconds(value)
		if err != nil {
			return Instant{}, err
		}
		return fromEpoch(secs)
	default:
		return Instant{}, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

func parseISO(s string) (Instant, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Instant{}, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}

	// Lowercase zone designators ("...t...z") are accepted by ISO-8601 readers.
	if i, ok := parseLayouts(s); ok {
		return i, nil
	}
	if upper := strings.ToUpper(s); upper != s {
		if i, ok := parseLayouts(upper); ok {
			return i, nil
		}
	}

	return Instant{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

func parseLayouts(s string) (Instant, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewInstant(t), true
		}
	}
	return Instant{}, false
}

func epochSeconds(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, v.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: epoch value must be numeric, got %T", ErrUnsupportedKind, value)
	}
}

var (
	minEpoch = float64(time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC).Unix())
	maxEpoch = float64(time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC).Unix())
)

func fromEpoch(secs float64) (Instant, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) || secs < minEpoch || secs > maxEpoch {
		return Instant{}, fmt.Errorf("%w: %v", ErrOutOfRange, secs)
	}

	whole, frac := math.Modf(secs)
	nanos := int64(math.Round(frac * 1e9))
	return Instant{t: time.Unix(int64(whole), nanos).UTC()}, nil
}

func wallClockUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
