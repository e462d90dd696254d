// Package calendar builds the full-week date grid for a target month.
package calendar

import "time"

// ISODate is the date key layout used throughout the schedule
const ISODate = "2006-01-02"

// Day is one date in the month grid
type Day struct {
	// Date at midnight local time
	Date time.Time

	// Key is the ISO date string (YYYY-MM-DD)
	Key string

	// Weekday of the date
	Weekday time.Weekday

	// InMonth is true only for dates within the target month; the rest are
	// padding that completes the leading and trailing weeks
	InMonth bool
}

// MonthGrid returns the ordered sequence of dates to schedule for the target
// month: from the Sunday on or before the 1st through the Saturday on or
// after the last day, so every week row is complete.
//
// The result always starts on a Sunday, ends on a Saturday, and has a length
// divisible by 7. Pure function of (year, month); all arithmetic is done in
// local time to keep date keys aligned with the local calendar.
func MonthGrid(year int, month time.Month) []Day {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	var days []Day
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, Day{
			Date:    d,
			Key:     d.Format(ISODate),
			Weekday: d.Weekday(),
			InMonth: !d.Before(first) && !d.After(last),
		})
	}

	return days
}

// DaysInMonth returns the number of days in the target month
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, -1).Day()
}
