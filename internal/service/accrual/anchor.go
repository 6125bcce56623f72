package accrual

import (
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
)

// AnchorDates returns the ordered monthly accrual instants from the joining
// date through asOf inclusive. The anchor day is the joining day-of-month,
// clamped to the last day of shorter months: an employee joined on the 31st
// accrues on the 30th of a 30-day month and on the 28th/29th of February.
func AnchorDates(joining, asOf time.Time) []time.Time {
	joining = dateutil.Date(joining)
	asOf = dateutil.Date(asOf)
	if asOf.Before(joining) {
		return nil
	}

	anchorDay := joining.Day()
	var anchors []time.Time
	for k := 0; ; k++ {
		monthStart := dateutil.AddMonths(dateutil.MonthStart(joining), k)
		day := anchorDay
		if last := dateutil.DaysIn(monthStart.Year(), monthStart.Month()); day > last {
			day = last
		}
		anchor := time.Date(monthStart.Year(), monthStart.Month(), day, 0, 0, 0, 0, time.UTC)
		if anchor.After(asOf) {
			return anchors
		}
		anchors = append(anchors, anchor)
	}
}

// ContractYearIndex returns the zero-based contract year an instant falls
// in: whole years elapsed between the joining date and the instant.
func ContractYearIndex(joining, at time.Time) int {
	return dateutil.YearsBetween(dateutil.Date(joining), dateutil.Date(at))
}

// ContractYearWindow returns the [start, end) window of the given contract
// year, anchored on the joining-date anniversary.
func ContractYearWindow(joining time.Time, yearIndex int) (time.Time, time.Time) {
	joining = dateutil.Date(joining)
	return dateutil.AddYears(joining, yearIndex), dateutil.AddYears(joining, yearIndex+1)
}
