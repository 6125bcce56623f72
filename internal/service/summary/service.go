// Package summary aggregates the attendance ledger into per-employee
// statistics for a date range. It is a pure consumer of the ledger query
// surface and never writes.
package summary

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
)

type Service struct {
	employees   employee.EmployeeRepository
	attendances attendance.AttendanceRepository
}

func NewService(employees employee.EmployeeRepository, attendances attendance.AttendanceRepository) *Service {
	return &Service{employees: employees, attendances: attendances}
}

type EmployeeSummary struct {
	EmployeeID           string
	EmployeeName         string
	TotalWorkingDays     int
	WorkedDays           int
	OfficeDays           int
	RemoteDays           int
	LeaveDays            int
	HolidayDays          int
	SickDays             int
	WeekendDays          int
	AttendancePercentage float64
}

// Range computes the summary for the given employees (all active employees
// when employeeIDs is empty) over [from, to].
func (s *Service) Range(ctx context.Context, employeeIDs []string, from, to time.Time) ([]EmployeeSummary, error) {
	from = dateutil.Date(from)
	to = dateutil.Date(to)

	var employees []employee.Employee
	if len(employeeIDs) == 0 {
		all, err := s.employees.ListActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list active employees: %w", err)
		}
		employees = all
	} else {
		for _, id := range employeeIDs {
			emp, err := s.employees.GetByID(ctx, id)
			if err != nil {
				return nil, fmt.Errorf("failed to get employee %s: %w", id, err)
			}
			employees = append(employees, emp)
		}
	}

	totalWorkingDays := weekdayCount(from, to)
	summaries := make([]EmployeeSummary, 0, len(employees))
	for _, emp := range employees {
		sum, err := s.summarize(ctx, emp, from, to, totalWorkingDays)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *Service) summarize(ctx context.Context, emp employee.Employee, from, to time.Time, totalWorkingDays int) (EmployeeSummary, error) {
	rows, err := s.attendances.ListByEmployeeRange(ctx, emp.ID, from, to)
	if err != nil {
		return EmployeeSummary{}, fmt.Errorf("failed to list attendance for %s: %w", emp.ID, err)
	}

	sum := EmployeeSummary{
		EmployeeID:       emp.ID,
		EmployeeName:     emp.FullName,
		TotalWorkingDays: totalWorkingDays,
	}

	// The ledger guarantees one row per day; should duplicates ever slip
	// in, the highest-signal classification for the day wins.
	byDay := make(map[string]attendance.WorkingType)
	for _, row := range rows {
		key := dateutil.Date(row.Day).Format("2006-01-02")
		if existing, ok := byDay[key]; !ok || dayRank(row.WorkingType) > dayRank(existing) {
			byDay[key] = row.WorkingType
		}
	}

	for _, wt := range byDay {
		switch wt {
		case attendance.WorkingTypeSick:
			sum.SickDays++
			sum.LeaveDays++
		case attendance.WorkingTypeAnnualLeave:
			sum.LeaveDays++
		case attendance.WorkingTypeHoliday:
			sum.HolidayDays++
		case attendance.WorkingTypeWeekend:
			sum.WeekendDays++
		case attendance.WorkingTypeOffice:
			sum.OfficeDays++
			sum.WorkedDays++
		case attendance.WorkingTypeRemote:
			sum.RemoteDays++
			sum.WorkedDays++
		}
	}

	if totalWorkingDays > 0 {
		pct := float64(sum.WorkedDays) / float64(totalWorkingDays) * 100
		sum.AttendancePercentage = math.Round(pct*100) / 100
	}
	return sum, nil
}

// dayRank orders classifications for the rare multi-row day: leave beats
// holiday beats weekend beats actual attendance.
func dayRank(wt attendance.WorkingType) int {
	switch wt {
	case attendance.WorkingTypeSick:
		return 5
	case attendance.WorkingTypeAnnualLeave:
		return 4
	case attendance.WorkingTypeHoliday:
		return 3
	case attendance.WorkingTypeWeekend:
		return 2
	case attendance.WorkingTypeOffice:
		return 1
	default:
		return 0
	}
}

func weekdayCount(from, to time.Time) int {
	count := 0
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}
