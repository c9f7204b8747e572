// utils/dates.go
package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const DayLayout = "2006-01-02"

var (
	ErrMonthToken = errors.New("month must be formatted YYYY-MM with a month between 01 and 12")
	ErrDayToken   = errors.New("date must be a calendar day formatted YYYY-MM-DD")

	monthTokenRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// DateOf drops the time of day and zone, keeping the calendar day t shows in
// its own location.
func DateOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from start to end. It is
// negative when end is before start.
func DaysBetween(start, end time.Time) int {
	start = DateOf(start)
	end = DateOf(end)
	return int(end.Sub(start).Hours() / 24)
}

func FormatDay(t time.Time) string {
	return DateOf(t).Format(DayLayout)
}

// ParseDay parses a YYYY-MM-DD token into a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDayToken, s)
	}
	return t, nil
}

// ParseMonth validates a YYYY-MM token and returns the first day of that month.
func ParseMonth(s string) (time.Time, error) {
	if !monthTokenRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMonthToken, s)
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMonthToken, s)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// DaysInMonth counts the days of the month containing first.
func DaysInMonth(first time.Time) int {
	return time.Date(first.Year(), first.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Today is the current calendar day in loc.
func Today(loc *time.Location) time.Time {
	return DateOf(time.Now().In(loc))
}
