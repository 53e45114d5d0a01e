// Package fiscal provides calendar math for the April–March fiscal year
// all projections are anchored to.
package fiscal

import "time"

// DefaultZone is the time zone all fiscal date math runs in unless
// overridden by config.
const DefaultZone = "Pacific/Auckland"

// DayKeyLayout is the canonical key format for daily maps.
const DayKeyLayout = "2006-01-02"

// MonthKeyLayout is the canonical key format for repayment months.
const MonthKeyLayout = "2006-01"

// Year holds the bounds of one fiscal year: April 1 00:00:00 through
// March 31 23:59:59 of the following calendar year.
type Year struct {
	Start time.Time
	End   time.Time
}

// CurrentYear returns the fiscal year containing now, evaluated in loc.
// January–March belong to the fiscal year that started the previous April.
func CurrentYear(now time.Time, loc *time.Location) Year {
	local := now.In(loc)
	startYear := local.Year()
	if local.Month() < time.April {
		startYear--
	}
	return Year{
		Start: time.Date(startYear, time.April, 1, 0, 0, 0, 0, loc),
		End:   time.Date(startYear+1, time.March, 31, 23, 59, 59, 0, loc),
	}
}

// Days returns the number of calendar days in the fiscal year (365 or 366).
func (y Year) Days() int {
	return DaysInclusive(y.Start, y.End)
}

// Contains reports whether t falls within the fiscal year, day-inclusive.
func (y Year) Contains(t time.Time) bool {
	return !t.Before(y.Start) && !t.After(y.End)
}

// MonthPeriod is one calendar-month slice of a larger range. The first and
// last period of a partition may be clipped to the range bounds.
type MonthPeriod struct {
	Start time.Time
	End   time.Time
	Year  int
	Month time.Month
}

// MonthlyPeriods partitions [start, end] into calendar-month chunks in
// chronological order. Returns nil when end precedes start.
func MonthlyPeriods(start, end time.Time) []MonthPeriod {
	if end.Before(start) {
		return nil
	}

	var periods []MonthPeriod
	cursor := start
	for !cursor.After(end) {
		monthStart := time.Date(cursor.Year(), cursor.Month(), 1, 0, 0, 0, 0, cursor.Location())
		monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Second)

		p := MonthPeriod{
			Start: cursor,
			End:   monthEnd,
			Year:  cursor.Year(),
			Month: cursor.Month(),
		}
		if p.End.After(end) {
			p.End = end
		}
		periods = append(periods, p)

		cursor = monthStart.AddDate(0, 1, 0)
	}
	return periods
}

// DaysInclusive counts calendar days from a through b, both ends included.
// Dates are compared by civil day, so DST transitions don't skew the count.
func DaysInclusive(a, b time.Time) int {
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	bu := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(bu.Sub(au).Hours()/24) + 1
}

// StartOfDay returns t truncated to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last second of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// DayKey formats t as a daily-map key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// MonthKey formats t as a repayment-month key.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}
