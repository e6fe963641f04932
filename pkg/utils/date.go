package utils

import "time"

// DateFormat is the calendar-day format used for trend buckets and reports.
const DateFormat = "2006-01-02"

// DayOf returns the calendar-day string of t using its stored location.
func DayOf(t time.Time) string {
	return t.Format(DateFormat)
}
