package scheduler

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidWeekID = errors.New("el identificador de semana no es valido")

// WeekID returns the ISO 8601 week identifier for t, formatted as
// "YYYY_WW". The year is the ISO week-year, which near January 1st can
// differ from the calendar year (2025-12-31 belongs to 2026_01).
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d_%02d", year, week)
}

// ParseWeekID splits a "YYYY_WW" identifier into its ISO week-year and
// week number, validating the week range against the given year.
func ParseWeekID(id string) (year, week int, err error) {
	if _, err := fmt.Sscanf(id, "%4d_%2d", &year, &week); err != nil {
		return 0, 0, ErrInvalidWeekID
	}
	if len(id) != 7 || id[4] != '_' {
		return 0, 0, ErrInvalidWeekID
	}
	if week < 1 || week > isoWeeksInYear(year) {
		return 0, 0, ErrInvalidWeekID
	}
	return year, week, nil
}

// WeekStart returns the Monday 00:00 of the given ISO week in loc.
func WeekStart(year, week int, loc *time.Location) time.Time {
	// January 4th is always in ISO week 1.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := jan4.AddDate(0, 0, 1-weekday)
	return monday.AddDate(0, 0, (week-1)*7)
}

// WeekInterval returns the half-open [start, end) bounds of the week
// identified by id, in loc.
func WeekInterval(id string, loc *time.Location) (start, end time.Time, err error) {
	year, week, err := ParseWeekID(id)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = WeekStart(year, week, loc)
	return start, start.AddDate(0, 0, 7), nil
}

func isoWeeksInYear(year int) int {
	// A year has 53 ISO weeks iff December 28th falls in week 53.
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}
