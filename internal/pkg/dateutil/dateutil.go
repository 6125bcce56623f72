// Package dateutil provides day-precision calendar arithmetic. Go's
// time.AddDate normalizes overflowing days (Jan 31 + 1 month = Mar 2/3);
// anniversary-based accrual needs clamping to the last day of shorter months
// instead.
package dateutil

import "time"

// Date truncates t to midnight UTC. The engines work at day precision only.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths adds n months to t, clamping the day-of-month to the last day
// of the target month.
func AddMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	totalMonths := int(month) - 1 + n
	targetYear := year + totalMonths/12
	targetMonth := time.Month(totalMonths%12 + 1)
	if totalMonths < 0 && totalMonths%12 != 0 {
		targetYear--
		targetMonth += 12
	}
	if last := DaysIn(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

// AddYears adds n years to t with day clamping (Feb 29 + 1 year = Feb 28).
func AddYears(t time.Time, n int) time.Time {
	return AddMonths(t, n*12)
}

// YearsBetween returns the number of whole years elapsed from start to end.
// Returns 0 when end precedes start.
func YearsBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	years := end.Year() - start.Year()
	anniversary := AddYears(start, years)
	if end.Before(anniversary) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's month.
func MonthEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), DaysIn(t.Year(), t.Month()), 0, 0, 0, 0, time.UTC)
}
