package response

import (
	"errors"
	"net/http"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/validator"
	leavesvc "github.com/kalibra-hr/workforce-backend-go/internal/service/leave"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var probationErr *leavesvc.ProbationError
	if errors.As(err, &probationErr) {
		BadRequest(w, probationErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	case errors.Is(err, contract.ErrNoOpenContract):
		NotFound(w, "No open contract for employee")
	case errors.Is(err, contract.ErrContractNotFound):
		NotFound(w, "Contract not found")
	case errors.Is(err, contract.ErrInvalidProbationPeriod):
		BadRequest(w, "Probation period must be between 1 and 6 months", nil)

	case errors.Is(err, attendance.ErrInvalidWorkingType):
		BadRequest(w, "Working type is not recognized", nil)

	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Work schedule not found")

	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAllocationNotFound):
		NotFound(w, "Leave allocation not found")
	case errors.Is(err, leave.ErrRequestAlreadyHandled):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Leave date range is invalid", nil)

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
