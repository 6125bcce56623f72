// Package leave hosts the leave request workflow surface. The batch engines
// only read terminal states; submission and approval live here, including
// the synchronous probation gate.
package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/leavetype"
)

// ProbationError rejects a leave request filed inside the probation window.
// It names the employee and the probation end date for the user-facing
// validation message.
type ProbationError struct {
	EmployeeName string
	ProbationEnd time.Time
}

func (e *ProbationError) Error() string {
	return fmt.Sprintf(
		"Employee %s is still in probation period (until %s). Leave requests are not allowed during probation period.",
		e.EmployeeName, e.ProbationEnd.Format("2006-01-02"))
}

type RequestService struct {
	employees   employee.EmployeeRepository
	contracts   contract.ContractRepository
	requests    leave.LeaveRequestRepository
	allocations leave.LeaveAllocationRepository
	catalog     *leavetype.Catalog
}

func NewRequestService(
	employees employee.EmployeeRepository,
	contracts contract.ContractRepository,
	requests leave.LeaveRequestRepository,
	allocations leave.LeaveAllocationRepository,
	catalog *leavetype.Catalog,
) *RequestService {
	return &RequestService{
		employees:   employees,
		contracts:   contracts,
		requests:    requests,
		allocations: allocations,
		catalog:     catalog,
	}
}

type SubmitRequest struct {
	EmployeeID  string
	LeaveTypeID string
	DateFrom    time.Time
	DateTo      time.Time
	Description *string
}

// Submit files a leave request in the confirm state. Requests starting
// before the employee's probation end are rejected synchronously.
func (s *RequestService) Submit(ctx context.Context, req SubmitRequest) (leave.LeaveRequest, error) {
	emp, err := s.employees.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}

	if _, err := s.catalog.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.LeaveRequest{}, err
	}

	dateFrom := dateutil.Date(req.DateFrom)
	dateTo := dateutil.Date(req.DateTo)
	if dateTo.Before(dateFrom) {
		return leave.LeaveRequest{}, leave.ErrInvalidDateRange
	}

	if err := s.checkProbation(ctx, emp, dateFrom); err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := s.requests.Create(ctx, leave.LeaveRequest{
		ID:          uuid.NewString(),
		EmployeeID:  emp.ID,
		LeaveTypeID: req.LeaveTypeID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		State:       leave.RequestStateConfirm,
		Description: req.Description,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

func (s *RequestService) checkProbation(ctx context.Context, emp employee.Employee, dateFrom time.Time) error {
	c, err := s.contracts.GetOpenByEmployee(ctx, emp.ID)
	if err != nil {
		if errors.Is(err, contract.ErrNoOpenContract) {
			return nil
		}
		return fmt.Errorf("failed to get open contract: %w", err)
	}

	if probationEnd := c.ProbationEnd(); dateFrom.Before(probationEnd) {
		return &ProbationError{EmployeeName: emp.FullName, ProbationEnd: probationEnd}
	}
	return nil
}

// Approve moves a request to the terminal validate state and books the
// requested days against a matching validated allocation.
func (s *RequestService) Approve(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if req.State != leave.RequestStateConfirm {
		return leave.LeaveRequest{}, leave.ErrRequestAlreadyHandled
	}

	days := decimal.NewFromInt(int64(dateutil.Date(req.DateTo).Sub(dateutil.Date(req.DateFrom)).Hours()/24) + 1)

	alloc, err := s.findCoveringAllocation(ctx, req, days)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if alloc != nil {
		if err := s.allocations.AddTakenDays(ctx, alloc.ID, days); err != nil {
			return leave.LeaveRequest{}, fmt.Errorf("failed to book taken days: %w", err)
		}
	}

	if err := s.requests.UpdateState(ctx, req.ID, leave.RequestStateValidate); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to validate leave request: %w", err)
	}
	req.State = leave.RequestStateValidate

	slog.Info("Leave request approved",
		"request_id", req.ID, "employee_id", req.EmployeeID, "days", days.String())
	return req, nil
}

// Refuse moves a pending request to the refuse state.
func (s *RequestService) Refuse(ctx context.Context, requestID string) (leave.LeaveRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if req.State != leave.RequestStateConfirm {
		return leave.LeaveRequest{}, leave.ErrRequestAlreadyHandled
	}
	if err := s.requests.UpdateState(ctx, req.ID, leave.RequestStateRefuse); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to refuse leave request: %w", err)
	}
	req.State = leave.RequestStateRefuse
	return req, nil
}

// findCoveringAllocation picks the validated allocation whose validity
// window covers the request start and which still has balance. Types that
// require no allocation (unpaid, public holiday) return nil.
func (s *RequestService) findCoveringAllocation(ctx context.Context, req leave.LeaveRequest, days decimal.Decimal) (*leave.LeaveAllocation, error) {
	lt, err := s.catalog.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return nil, err
	}
	switch lt.CodeOrEmpty() {
	case leave.CodeUnpaid, leave.CodeHoliday:
		return nil, nil
	}

	allocs, err := s.allocations.ListValidatedAuto(ctx, req.EmployeeID, req.LeaveTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}

	start := dateutil.Date(req.DateFrom)
	for i := range allocs {
		alloc := allocs[i]
		if start.Before(alloc.DateFrom) || !start.Before(alloc.DateTo) {
			continue
		}
		if alloc.NumberOfDays.Sub(alloc.LeavesTaken).GreaterThanOrEqual(days) {
			return &alloc, nil
		}
	}
	return nil, leave.ErrInsufficientBalance
}
