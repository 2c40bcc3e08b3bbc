package types

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates (vacation ranges)
const DateLayout = "2006-01-02"

// timestampLayouts are tried in order when parsing provider timestamps
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05",
	DateLayout,
}

// ParseDate parses a YYYY-MM-DD calendar date at midnight UTC
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func FormatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseTimestamp parses a provider timestamp. Values without an offset are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp format: %q", s)
}

// DateOf returns the calendar date of t, as seen in t's own location, at midnight UTC.
// Comparing two DateOf values compares calendar days regardless of offsets.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays moves t forward by whole calendar days.
// The wall clock and location are kept, so month ends, leap days and DST
// transitions land on the same local time of the target day.
func AddDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}

// RangesOverlap reports whether the inclusive ranges [aFrom, aTo] and [bFrom, bTo]
// share at least one day.
func RangesOverlap(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !aFrom.After(bTo) && !bFrom.After(aTo)
}
