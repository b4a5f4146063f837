package dateutil

import (
	"fmt"
	"time"

	"github.com/termhq/termplan/internal/constants"
)

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// FormatDate formats a time as a date string (YYYY-MM-DD).
func FormatDate(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Day strips the time-of-day component, normalizing to midnight UTC so
// that day-granularity comparisons ignore clock time and zone.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// ContainsDay reports whether d falls inside [start, end], inclusive at
// both ends, compared at day granularity.
func ContainsDay(d, start, end time.Time) bool {
	day := Day(d)
	return !day.Before(Day(start)) && !day.After(Day(end))
}

// WeekNumber returns the ISO 8601 week number of t.
func WeekNumber(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// DayIndex returns the weekday of t as an index, 0=Sunday .. 6=Saturday.
func DayIndex(t time.Time) int {
	return int(t.Weekday())
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// StartOfWeek returns the Monday of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	d := Day(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// StartOfMonth returns the first day of the month containing t.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	first := StartOfMonth(t)
	return first.AddDate(0, 1, -1).Day()
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number
// of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// HourOf returns the hour component of a time string (HH:MM).
func HourOf(timeStr string) (int, error) {
	t, err := ParseTime(timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ValidateDateFormat checks if the string matches the standard date format.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}
