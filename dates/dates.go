// Package dates parses and validates the ISO-8601 date and timestamp formats
// used by the mock banking API, and independently recomputes calendar offset
// dates so tests never have to trust the server's own date arithmetic.
package dates

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the strict date format for fields like startDate.
	DateLayout = "2006-01-02"
	// TimestampLayout is the strict format for fields like createdAt.
	TimestampLayout = "2006-01-02 15:04:05"
)

// DateParseError indicates a string that does not conform to the expected
// format. It surfaces as a test assertion failure, never as a retry.
type DateParseError struct {
	Input  string
	Layout string
	Err    error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %q: %s", e.Input, e.Layout, e.Err)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ParseDate parses a strict yyyy-MM-dd date. Strings that time.Parse would
// accept leniently (single-digit fields, trailing content) are rejected.
func ParseDate(s string) (time.Time, error) {
	return parseStrict(s, DateLayout)
}

// ParseTimestamp parses a strict "yyyy-MM-dd HH:mm:ss" timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return parseStrict(s, TimestampLayout)
}

func parseStrict(s, layout string) (time.Time, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, &DateParseError{Input: s, Layout: layout, Err: err}
	}
	// time.Parse tolerates missing leading zeros; round-tripping catches that
	if t.Format(layout) != s {
		return time.Time{}, &DateParseError{
			Input:  s,
			Layout: layout,
			Err:    fmt.Errorf("not in canonical form"),
		}
	}
	return t, nil
}

// IsValidDate reports whether s is a well-formed yyyy-MM-dd date.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// IsValidTimestamp reports whether s is a well-formed timestamp.
func IsValidTimestamp(s string) bool {
	_, err := ParseTimestamp(s)
	return err == nil
}

// Today returns the current local date with the time portion zeroed.
func Today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// ExpectedOffsetDate adds a number of calendar months to a base date, clamping
// to the end of the month when the base day does not exist in the target month
// (Jan 31 + 1 month is Feb 28 or 29, never Mar 2/3). Note that time.AddDate
// normalizes instead of clamping, which is exactly the arithmetic bug this
// harness exists to catch, so we do not use it here.
func ExpectedOffsetDate(base time.Time, months int) time.Time {
	y, m, d := base.Date()
	total := int(m) - 1 + months
	ty := y + total/12
	tm := total % 12
	if tm < 0 {
		tm += 12
		ty--
	}
	targetMonth := time.Month(tm + 1)
	if last := daysIn(ty, targetMonth); d > last {
		d = last
	}
	return time.Date(ty, targetMonth, d, 0, 0, 0, 0, base.Location())
}

// daysIn returns the number of days in the given month; day 0 of the next
// month is the last day of this one.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// WithinTolerance reports whether actual is within the given window of
// expected. This is only for "now"-based instantaneous fields such as
// createdAt; calendar month offsets must match exactly.
func WithinTolerance(actual, expected time.Time, tolerance time.Duration) bool {
	diff := actual.Sub(expected)
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}

// DaysBetween returns the whole-day difference from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	a0 := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	b0 := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(b0.Sub(a0) / (24 * time.Hour))
}

// SameDateWithin reports whether two dates are no more than tolerance whole
// days apart, used for date-only fields derived from "now" (a request sent
// just before midnight may land on the next day server-side).
func SameDateWithin(actual, expected time.Time, toleranceDays int) bool {
	d := DaysBetween(actual, expected)
	if d < 0 {
		d = -d
	}
	return d <= toleranceDays
}
