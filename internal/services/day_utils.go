package services

import (
	"math"
	"time"
)

const isoDayFormat = "2006-01-02"

// DateOnly truncates a timestamp to its calendar day, keeping the location.
func DateOnly(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func AddDays(day time.Time, days int) time.Time {
	return DateOnly(day).AddDate(0, 0, days)
}

// DiffDays returns the calendar-day distance from one day to another,
// positive when to is after from.
func DiffDays(from time.Time, to time.Time) int {
	fromDay := DateOnly(from)
	toDay := DateOnly(to)
	return int(math.Round(toDay.Sub(fromDay).Hours() / 24))
}

func ISODay(day time.Time) string {
	return day.Format(isoDayFormat)
}

func ParseISODay(raw string) (time.Time, error) {
	return time.ParseInLocation(isoDayFormat, raw, time.UTC)
}

func SameCalendarDay(a time.Time, b time.Time) bool {
	return a.Format(isoDayFormat) == b.Format(isoDayFormat)
}

// BetweenDays reports whether day lies in [start, end], comparing whole
// calendar days. An end before start matches nothing.
func BetweenDays(day time.Time, start time.Time, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	d := DateOnly(day)
	s := DateOnly(start)
	e := DateOnly(end)
	return !d.Before(s) && !d.After(e)
}

func roundHalfAwayFromZero(value float64) int {
	return int(math.Round(value))
}

func clampInt(value int, min int, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
