package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestParseDate(t *testing.T) {
	d := mustDate(t, "2024-05-15")
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.May, d.Month())
	assert.Equal(t, 15, d.Day())
}

func TestParseDateRejectsNonConformingStrings(t *testing.T) {
	badInputs := []string{
		"",
		"2024-1-31",     // missing leading zero
		"2024-01-3",     // missing leading zero
		"24-01-31",      // two-digit year
		"31-01-2024",    // wrong field order
		"2024/01/31",    // wrong separator
		"2024-01-31 ",   // trailing content
		"2024-01-31T00", // timestamp fragment
		"2024-13-01",    // no such month
		"not a date",
	}
	for _, input := range badInputs {
		_, err := ParseDate(input)
		require.Errorf(t, err, "input %q should have been rejected", input)
		var parseErr *DateParseError
		assert.True(t, errors.As(err, &parseErr), "error for %q should be a DateParseError", input)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, err := ParseTimestamp("2024-05-15 13:45:09")
	require.NoError(t, err)
	assert.Equal(t, 13, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
	assert.Equal(t, 9, ts.Second())

	_, err = ParseTimestamp("2024-05-15")
	assert.Error(t, err, "date without time portion is not a timestamp")
	_, err = ParseTimestamp("2024-05-15T13:45:09")
	assert.Error(t, err, "RFC 3339 separator is not the expected format")
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate("2024-02-29"))
	assert.False(t, IsValidDate("2023-02-29")) // not a leap year
	assert.False(t, IsValidDate("2024-02-30"))
}

func TestExpectedOffsetDate(t *testing.T) {
	cases := []struct {
		base     string
		months   int
		expected string
	}{
		{"2024-01-15", 1, "2024-02-15"},
		{"2024-01-15", 0, "2024-01-15"},
		{"2024-01-31", 1, "2024-02-29"}, // leap year clamp
		{"2023-01-31", 1, "2023-02-28"}, // non-leap clamp
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-08-31", 6, "2025-02-28"}, // clamp across a year boundary
		{"2024-11-15", 2, "2025-01-15"},
		{"2024-01-31", 12, "2025-01-31"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-01-15", 240, "2044-01-15"},
		{"2024-03-31", -1, "2024-02-29"}, // not expected from the domain, but still arithmetic-correct
	}
	for _, c := range cases {
		actual := ExpectedOffsetDate(mustDate(t, c.base), c.months)
		assert.Equalf(t, c.expected, actual.Format(DateLayout),
			"%s + %d months", c.base, c.months)
	}
}

func TestExpectedOffsetDateDoesNotNormalizeLikeAddDate(t *testing.T) {
	// time.AddDate would turn Jan 31 + 1 month into Mar 2/3; make sure we
	// never inherit that behavior by accident
	base := mustDate(t, "2023-01-31")
	assert.NotEqual(t, base.AddDate(0, 1, 0), ExpectedOffsetDate(base, 1))
}

func TestWithinTolerance(t *testing.T) {
	now := time.Now()
	assert.True(t, WithinTolerance(now.Add(3*time.Second), now, 5*time.Second))
	assert.True(t, WithinTolerance(now.Add(-3*time.Second), now, 5*time.Second))
	assert.False(t, WithinTolerance(now.Add(6*time.Second), now, 5*time.Second))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 1, DaysBetween(mustDate(t, "2024-02-28"), mustDate(t, "2024-02-29")))
	assert.Equal(t, -1, DaysBetween(mustDate(t, "2024-03-01"), mustDate(t, "2024-02-29")))
	assert.Equal(t, 0, DaysBetween(mustDate(t, "2024-02-29"), mustDate(t, "2024-02-29")))
	assert.Equal(t, 366, DaysBetween(mustDate(t, "2024-01-01"), mustDate(t, "2025-01-01")))
}

func TestSameDateWithin(t *testing.T) {
	assert.True(t, SameDateWithin(mustDate(t, "2024-03-01"), mustDate(t, "2024-02-29"), 1))
	assert.False(t, SameDateWithin(mustDate(t, "2024-03-02"), mustDate(t, "2024-02-29"), 1))
}
