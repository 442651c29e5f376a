package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekIDUsesISOWeekYear(t *testing.T) {
	cases := []struct {
		date time.Time
		want string
	}{
		{time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "2026_10"},
		{time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC), "2026_01"}, // ISO year rolls over early
		{time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), "2026_53"},
		{time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), "2026_01"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekID(tc.date), "date %s", tc.date)
	}
}

func TestParseWeekIDRoundTrip(t *testing.T) {
	year, week, err := ParseWeekID("2026_10")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 10, week)

	start := WeekStart(year, week, time.UTC)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.True(t, start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026_10", WeekID(start))
}

func TestParseWeekIDRejectsMalformedInput(t *testing.T) {
	for _, id := range []string{
		"",
		"2026",
		"2026-10",
		"2026_00",
		"2026_54",
		"2026_9",      // week must be two digits
		"26_10",       // year must be four digits
		"2026_10_abc", // trailing garbage
	} {
		_, _, err := ParseWeekID(id)
		assert.ErrorIs(t, err, ErrInvalidWeekID, "id %q", id)
	}
}

func TestParseWeekIDWeek53OnlyInLongYears(t *testing.T) {
	// 2026 has 53 ISO weeks, 2025 does not.
	_, _, err := ParseWeekID("2026_53")
	assert.NoError(t, err)

	_, _, err = ParseWeekID("2025_53")
	assert.ErrorIs(t, err, ErrInvalidWeekID)
}

func TestWeekInterval(t *testing.T) {
	start, end, err := WeekInterval("2026_10", time.UTC)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)))
}
