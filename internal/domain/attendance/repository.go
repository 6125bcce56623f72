package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDay returns the row for the calendar day, or nil when
	// the day is unclassified.
	GetByEmployeeAndDay(ctx context.Context, employeeID string, day time.Time) (*Attendance, error)

	// UpsertDay atomically applies the reconciler's rule for one day:
	// create the row if absent; rewrite working type and note in place iff
	// the existing row is a weekend fill-in and att carries a more specific
	// type; otherwise leave the row untouched.
	UpsertDay(ctx context.Context, att Attendance) (UpsertOutcome, error)

	// ListByEmployeeRange returns the employee's rows with Day inside
	// [from, to], ordered by day. This is the ledger query surface.
	ListByEmployeeRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}
