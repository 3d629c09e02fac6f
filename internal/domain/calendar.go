// Package domain contains core business entities and interfaces.
package domain

import "time"

// CalendarKey identifies the current day and ISO week.
// It is resolved once per session and threaded through every operation.
type CalendarKey struct {
	DayOfYear int // 1-based ordinal day within Year
	ISOWeek   int // ISO-8601 week number (1..53)
	Year      int // Calendar year
	ISOYear   int // ISO week-based year that ISOWeek belongs to
}

// ResolveCalendar converts a wall-clock time into a CalendarKey.
// The time is used as-is: no timezone normalization is applied.
func ResolveCalendar(t time.Time) CalendarKey {
	isoYear, isoWeek := t.ISOWeek()
	return CalendarKey{
		DayOfYear: t.YearDay(),
		ISOWeek:   isoWeek,
		Year:      t.Year(),
		ISOYear:   isoYear,
	}
}

// Week returns the key of the weekly goal for this calendar position.
func (c CalendarKey) Week() WeekKey {
	return WeekKey{Week: c.ISOWeek, Year: c.ISOYear}
}

// Day returns the key of the daily objective for this calendar position.
func (c CalendarKey) Day() DayKey {
	return DayKey{Day: c.DayOfYear, Year: c.Year}
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
