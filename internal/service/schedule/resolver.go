// Package schedule resolves an employee's working calendar: which weekdays
// carry working time under the open contract's schedule, and which dated
// exceptions (public holidays) fall in a window.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
)

type Resolver struct {
	contracts contract.ContractRepository
	schedules schedule.WorkScheduleRepository
}

func NewResolver(contracts contract.ContractRepository, schedules schedule.WorkScheduleRepository) *Resolver {
	return &Resolver{contracts: contracts, schedules: schedules}
}

// WorkingWeekdays returns the weekdays with a positive working duration in
// the employee's open contract's schedule as of the reference date. An empty
// set means no schedule is known; callers fall back to Monday-Friday.
func (r *Resolver) WorkingWeekdays(ctx context.Context, employeeID string, asOf time.Time) (map[time.Weekday]bool, error) {
	working := make(map[time.Weekday]bool)

	c, err := r.contracts.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoOpenContract) {
			return working, nil
		}
		return nil, fmt.Errorf("failed to get open contract: %w", err)
	}
	if c.WorkScheduleID == nil || c.StartDate.After(asOf) {
		return working, nil
	}

	ws, err := r.schedules.GetByID(ctx, *c.WorkScheduleID)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return working, nil
		}
		return nil, fmt.Errorf("failed to get work schedule: %w", err)
	}

	for _, line := range ws.Lines {
		if line.DurationDays > 0 {
			working[line.Weekday()] = true
		}
	}
	return working, nil
}

// PublicHolidayRanges returns the calendar exceptions of the employee's
// schedule overlapping [from, to].
func (r *Resolver) PublicHolidayRanges(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.CalendarException, error) {
	c, err := r.contracts.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoOpenContract) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open contract: %w", err)
	}
	if c.WorkScheduleID == nil {
		return nil, nil
	}

	excs, err := r.schedules.ListExceptionsInRange(ctx, *c.WorkScheduleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar exceptions: %w", err)
	}
	return excs, nil
}

// HasOpenContract reports whether the employee has an open contract covering
// any part of [from, to].
func (r *Resolver) HasOpenContract(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	c, err := r.contracts.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, contract.ErrNoOpenContract) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get open contract: %w", err)
	}
	return c.IsOpenDuring(from, to), nil
}
