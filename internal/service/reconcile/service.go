// Package reconcile implements the attendance reconciliation engine. For a
// target month it derives one ledger row per employee per day for approved
// leave, public holidays and weekend/off days, in that priority order.
// Re-running on the same state produces zero additional writes.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
)

// ScheduleResolver is the slice of the work-schedule resolver the engine
// consumes.
type ScheduleResolver interface {
	WorkingWeekdays(ctx context.Context, employeeID string, asOf time.Time) (map[time.Weekday]bool, error)
	PublicHolidayRanges(ctx context.Context, employeeID string, from, to time.Time) ([]schedule.CalendarException, error)
	HasOpenContract(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
}

type Service struct {
	employees   employee.EmployeeRepository
	requests    leave.LeaveRequestRepository
	attendances attendance.AttendanceRepository
	resolver    ScheduleResolver
}

func NewService(
	employees employee.EmployeeRepository,
	requests leave.LeaveRequestRepository,
	attendances attendance.AttendanceRepository,
	resolver ScheduleResolver,
) *Service {
	return &Service{
		employees:   employees,
		requests:    requests,
		attendances: attendances,
		resolver:    resolver,
	}
}

// Result summarizes one reconciliation run.
type Result struct {
	Created int
	Updated int
}

// ReconcileMonth classifies every day of the target month for every active,
// contracted employee. employeeID narrows the run to one employee when
// non-empty. Leave and holiday passes run before the weekend fill-in so a
// day covered by both ends up with the more specific classification.
func (s *Service) ReconcileMonth(ctx context.Context, year int, month time.Month, employeeID string) (Result, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := dateutil.MonthEnd(first)
	slog.Info("Reconcile: Starting attendance reconciliation",
		"month", first.Format("2006-01"), "employee_id", employeeID)

	var result Result
	if err := s.applyApprovedLeave(ctx, first, last, employeeID, &result); err != nil {
		return result, err
	}
	if err := s.applyPublicHolidays(ctx, first, last, employeeID, &result); err != nil {
		return result, err
	}
	if err := s.fillWeekends(ctx, first, last, employeeID, &result); err != nil {
		return result, err
	}

	slog.Info("Reconcile: Attendance reconciliation completed",
		"month", first.Format("2006-01"), "created", result.Created, "updated", result.Updated)
	return result, nil
}

// applyApprovedLeave is pass A: one row per day of every approved leave
// request overlapping the month. Existing weekend rows are promoted to the
// leave's working type; any other existing row wins and is left untouched.
func (s *Service) applyApprovedLeave(ctx context.Context, first, last time.Time, employeeID string, result *Result) error {
	requests, err := s.requests.ListValidatedOverlapping(ctx, first, last)
	if err != nil {
		return fmt.Errorf("failed to list approved leave requests: %w", err)
	}

	for _, req := range requests {
		if employeeID != "" && req.EmployeeID != employeeID {
			continue
		}
		emp, err := s.employees.GetByID(ctx, req.EmployeeID)
		if err != nil || !emp.Active {
			continue
		}
		hasContract, err := s.resolver.HasOpenContract(ctx, emp.ID, first, last)
		if err != nil {
			slog.Error("Reconcile: Failed to resolve contract", "employee_id", emp.ID, "error", err)
			continue
		}
		if !hasContract {
			continue
		}

		workingType := WorkingTypeForLeave(req)
		from := dateutil.Date(req.DateFrom)
		to := dateutil.Date(req.DateTo)
		if from.Before(first) {
			from = first
		}
		if to.After(last) {
			to = last
		}

		for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
			s.upsertDay(ctx, emp.ID, day, workingType, req.Description, result)
		}
	}
	return nil
}

// applyPublicHolidays is pass B: calendar exceptions on the employee's
// schedule, upserted as holiday rows with the exception label as note.
func (s *Service) applyPublicHolidays(ctx context.Context, first, last time.Time, employeeID string, result *Result) error {
	employees, err := s.targetEmployees(ctx, employeeID)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		hasContract, err := s.resolver.HasOpenContract(ctx, emp.ID, first, last)
		if err != nil || !hasContract {
			continue
		}

		exceptions, err := s.resolver.PublicHolidayRanges(ctx, emp.ID, first, last)
		if err != nil {
			slog.Warn("Reconcile: Failed to resolve public holidays",
				"employee_id", emp.ID, "error", err)
			continue
		}

		for _, exc := range exceptions {
			from := dateutil.Date(exc.DateFrom)
			to := dateutil.Date(exc.DateTo)
			if from.Before(first) {
				from = first
			}
			if to.After(last) {
				to = last
			}
			label := exc.Label
			for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
				s.upsertDay(ctx, emp.ID, day, attendance.WorkingTypeHoliday, &label, result)
			}
		}
	}
	return nil
}

// fillWeekends is pass C: a weekend row for every still-unclassified day
// whose weekday carries no working time. Never rewrites an existing row.
func (s *Service) fillWeekends(ctx context.Context, first, last time.Time, employeeID string, result *Result) error {
	employees, err := s.targetEmployees(ctx, employeeID)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		hasContract, err := s.resolver.HasOpenContract(ctx, emp.ID, first, last)
		if err != nil {
			slog.Error("Reconcile: Failed to resolve contract", "employee_id", emp.ID, "error", err)
			continue
		}
		if !hasContract {
			slog.Debug("Reconcile: Skipping employee without open contract", "employee_id", emp.ID)
			continue
		}

		working, err := s.resolver.WorkingWeekdays(ctx, emp.ID, last)
		if err != nil {
			slog.Warn("Reconcile: Failed to resolve work schedule",
				"employee_id", emp.ID, "error", err)
			continue
		}
		if len(working) == 0 {
			// No schedule known: Monday-Friday default.
			working = map[time.Weekday]bool{
				time.Monday: true, time.Tuesday: true, time.Wednesday: true,
				time.Thursday: true, time.Friday: true,
			}
		}

		for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
			if working[day.Weekday()] {
				continue
			}
			s.upsertDay(ctx, emp.ID, day, attendance.WorkingTypeWeekend, nil, result)
		}
	}
	return nil
}

// upsertDay applies the single reconciliation write rule for one calendar
// day and folds the outcome into the run counters.
func (s *Service) upsertDay(ctx context.Context, employeeID string, day time.Time, workingType attendance.WorkingType, note *string, result *Result) {
	checkIn := day
	checkOut := day // zero-duration marker for derived rows
	outcome, err := s.attendances.UpsertDay(ctx, attendance.Attendance{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		Day:         day,
		CheckIn:     checkIn,
		CheckOut:    &checkOut,
		WorkingType: workingType,
		Note:        note,
	})
	if err != nil {
		slog.Error("Reconcile: Failed to upsert attendance",
			"employee_id", employeeID, "day", day.Format("2006-01-02"), "error", err)
		return
	}
	switch outcome {
	case attendance.UpsertCreated:
		result.Created++
	case attendance.UpsertUpdated:
		result.Updated++
	}
}

func (s *Service) targetEmployees(ctx context.Context, employeeID string) ([]employee.Employee, error) {
	if employeeID != "" {
		emp, err := s.employees.GetByID(ctx, employeeID)
		if err != nil {
			return nil, fmt.Errorf("failed to get employee: %w", err)
		}
		if !emp.Active {
			return nil, nil
		}
		return []employee.Employee{emp}, nil
	}
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	return employees, nil
}

// WorkingTypeForLeave maps a leave request to the ledger classification.
// The type code is authoritative; keyword matching on the display name is
// only a fallback for rows without a code.
func WorkingTypeForLeave(req leave.LeaveRequest) attendance.WorkingType {
	if req.LeaveTypeCode != nil && *req.LeaveTypeCode != "" {
		switch *req.LeaveTypeCode {
		case leave.CodeSick:
			return attendance.WorkingTypeSick
		case leave.CodeAnnual:
			return attendance.WorkingTypeAnnualLeave
		case leave.CodeHoliday:
			return attendance.WorkingTypeHoliday
		case leave.CodeUnpaid:
			// Unpaid leave shows as annual leave on the ledger.
			return attendance.WorkingTypeAnnualLeave
		}
	}

	name := ""
	if req.LeaveTypeName != nil {
		name = strings.ToLower(*req.LeaveTypeName)
	}
	switch {
	case strings.Contains(name, "sick"):
		return attendance.WorkingTypeSick
	case strings.Contains(name, "annual"), strings.Contains(name, "paid"):
		return attendance.WorkingTypeAnnualLeave
	default:
		return attendance.WorkingTypeHoliday
	}
}
