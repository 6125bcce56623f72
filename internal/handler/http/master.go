package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/contract"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/employee"
	"github.com/kalibra-hr/workforce-backend-go/internal/domain/schedule"
	"github.com/kalibra-hr/workforce-backend-go/internal/handler/http/response"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/validator"
)

// MasterHandler is the intake surface for HR master data. Employees,
// contracts and work schedules are normally synced in from the HR system of
// record, so these endpoints stay write-once: no update or delete.
type MasterHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	CreateContract(w http.ResponseWriter, r *http.Request)
	CreateWorkSchedule(w http.ResponseWriter, r *http.Request)
	AddCalendarException(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	employees employee.EmployeeRepository
	contracts contract.ContractRepository
	schedules schedule.WorkScheduleRepository
	validate  *playground.Validate
}

func NewMasterHandler(
	employees employee.EmployeeRepository,
	contracts contract.ContractRepository,
	schedules schedule.WorkScheduleRepository,
	validate *playground.Validate,
) MasterHandler {
	return &MasterHandlerImpl{
		employees: employees,
		contracts: contracts,
		schedules: schedules,
		validate:  validate,
	}
}

type createEmployeePayload struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
}

type employeeResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Active   bool   `json:"active"`
}

// CreateEmployee implements MasterHandler.
func (h *MasterHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload createEmployeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("CreateEmployee decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	created, err := h.employees.Create(r.Context(), employee.Employee{
		ID:       uuid.NewString(),
		FullName: payload.FullName,
		Email:    payload.Email,
		Active:   true,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created successfully", employeeResponse{
		ID:       created.ID,
		FullName: created.FullName,
		Email:    created.Email,
		Active:   created.Active,
	})
}

// ListEmployees implements MasterHandler.
func (h *MasterHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.employees.ListActive(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employeeResponse, 0, len(employees))
	for _, emp := range employees {
		out = append(out, employeeResponse{
			ID:       emp.ID,
			FullName: emp.FullName,
			Email:    emp.Email,
			Active:   emp.Active,
		})
	}
	response.Success(w, out)
}

type createContractPayload struct {
	EmployeeID            string  `json:"employee_id" validate:"required,uuid4"`
	StartDate             string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate               *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	ProbationPeriodMonths int     `json:"probation_period_months" validate:"required,min=1,max=6"`
	WorkScheduleID        *string `json:"work_schedule_id" validate:"omitempty,uuid4"`
}

type contractResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	StartDate             string  `json:"start_date"`
	EndDate               *string `json:"end_date,omitempty"`
	State                 string  `json:"state"`
	ProbationPeriodMonths int     `json:"probation_period_months"`
	WorkScheduleID        *string `json:"work_schedule_id,omitempty"`
}

// CreateContract implements MasterHandler. New contracts always open; the
// HR system of record closes them by syncing an end date later.
func (h *MasterHandlerImpl) CreateContract(w http.ResponseWriter, r *http.Request) {
	var payload createContractPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("CreateContract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	startDate, _ := time.Parse("2006-01-02", payload.StartDate)

	var endDate *time.Time
	if payload.EndDate != nil {
		parsed, _ := time.Parse("2006-01-02", *payload.EndDate)
		if parsed.Before(startDate) {
			response.BadRequest(w, "end_date must not precede start_date", nil)
			return
		}
		endDate = &parsed
	}

	created, err := h.contracts.Create(r.Context(), contract.Contract{
		ID:                    uuid.NewString(),
		EmployeeID:            payload.EmployeeID,
		StartDate:             startDate,
		EndDate:               endDate,
		State:                 contract.ContractStateOpen,
		ProbationPeriodMonths: payload.ProbationPeriodMonths,
		WorkScheduleID:        payload.WorkScheduleID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := contractResponse{
		ID:                    created.ID,
		EmployeeID:            created.EmployeeID,
		StartDate:             created.StartDate.Format("2006-01-02"),
		State:                 string(created.State),
		ProbationPeriodMonths: created.ProbationPeriodMonths,
		WorkScheduleID:        created.WorkScheduleID,
	}
	if created.EndDate != nil {
		end := created.EndDate.Format("2006-01-02")
		out.EndDate = &end
	}
	response.Created(w, "Contract created successfully", out)
}

type workScheduleLinePayload struct {
	DayOfWeek    int     `json:"day_of_week" validate:"min=0,max=6"`
	DurationDays float64 `json:"duration_days" validate:"min=0,max=1"`
}

type createWorkSchedulePayload struct {
	Name  string                    `json:"name" validate:"required"`
	Lines []workScheduleLinePayload `json:"lines" validate:"required,min=1,dive"`
}

type workScheduleResponse struct {
	ID    string                    `json:"id"`
	Name  string                    `json:"name"`
	Lines []workScheduleLinePayload `json:"lines"`
}

// CreateWorkSchedule implements MasterHandler.
func (h *MasterHandlerImpl) CreateWorkSchedule(w http.ResponseWriter, r *http.Request) {
	var payload createWorkSchedulePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("CreateWorkSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	ws := schedule.WorkSchedule{
		ID:   uuid.NewString(),
		Name: payload.Name,
	}
	for _, line := range payload.Lines {
		ws.Lines = append(ws.Lines, schedule.WorkScheduleLine{
			ID:             uuid.NewString(),
			WorkScheduleID: ws.ID,
			DayOfWeek:      line.DayOfWeek,
			DurationDays:   line.DurationDays,
		})
	}

	created, err := h.schedules.Create(r.Context(), ws)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := workScheduleResponse{ID: created.ID, Name: created.Name}
	for _, line := range created.Lines {
		out.Lines = append(out.Lines, workScheduleLinePayload{
			DayOfWeek:    line.DayOfWeek,
			DurationDays: line.DurationDays,
		})
	}
	response.Created(w, "Work schedule created successfully", out)
}

type addCalendarExceptionPayload struct {
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
	Label    string `json:"label" validate:"required"`
}

type calendarExceptionResponse struct {
	ID             string `json:"id"`
	WorkScheduleID string `json:"work_schedule_id"`
	DateFrom       string `json:"date_from"`
	DateTo         string `json:"date_to"`
	Label          string `json:"label"`
}

// AddCalendarException implements MasterHandler. Exceptions are the public
// holidays the reconciler stamps onto attendance days.
func (h *MasterHandlerImpl) AddCalendarException(w http.ResponseWriter, r *http.Request) {
	workScheduleID := chi.URLParam(r, "id")
	if validator.IsEmpty(workScheduleID) {
		response.BadRequest(w, "Work schedule ID is required", nil)
		return
	}

	var payload addCalendarExceptionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("AddCalendarException decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	dateFrom, _ := time.Parse("2006-01-02", payload.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", payload.DateTo)
	if dateTo.Before(dateFrom) {
		response.BadRequest(w, "date_to must not precede date_from", nil)
		return
	}

	// The schedule must exist before an exception can hang off it.
	if _, err := h.schedules.GetByID(r.Context(), workScheduleID); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.schedules.AddException(r.Context(), schedule.CalendarException{
		ID:             uuid.NewString(),
		WorkScheduleID: workScheduleID,
		DateFrom:       dateFrom,
		DateTo:         dateTo,
		Label:          payload.Label,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Calendar exception added successfully", calendarExceptionResponse{
		ID:             created.ID,
		WorkScheduleID: created.WorkScheduleID,
		DateFrom:       created.DateFrom.Format("2006-01-02"),
		DateTo:         created.DateTo.Format("2006-01-02"),
		Label:          created.Label,
	})
}
