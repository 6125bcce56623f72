package schedule

import (
	"context"
	"time"
)

type WorkScheduleRepository interface {
	Create(ctx context.Context, ws WorkSchedule) (WorkSchedule, error)

	// GetByID returns the schedule with its weekly lines loaded.
	GetByID(ctx context.Context, id string) (WorkSchedule, error)

	// ListExceptionsInRange returns the schedule's calendar exceptions
	// overlapping [from, to].
	ListExceptionsInRange(ctx context.Context, workScheduleID string, from, to time.Time) ([]CalendarException, error)

	AddException(ctx context.Context, exc CalendarException) (CalendarException, error)
}
