package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	playground "github.com/go-playground/validator/v10"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/handler/http/response"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/validator"
	leavesvc "github.com/kalibra-hr/workforce-backend-go/internal/service/leave"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/leavetype"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RefuseRequest(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	ListAllocations(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	requestService *leavesvc.RequestService
	allocations    leave.LeaveAllocationRepository
	types          leave.LeaveTypeRepository
	catalog        *leavetype.Catalog
	validate       *playground.Validate
}

func NewLeaveHandler(
	requestService *leavesvc.RequestService,
	allocations leave.LeaveAllocationRepository,
	types leave.LeaveTypeRepository,
	catalog *leavetype.Catalog,
	validate *playground.Validate,
) LeaveHandler {
	return &LeaveHandlerImpl{
		requestService: requestService,
		allocations:    allocations,
		types:          types,
		catalog:        catalog,
		validate:       validate,
	}
}

type createLeaveRequestPayload struct {
	EmployeeID  string  `json:"employee_id" validate:"required,uuid4"`
	LeaveTypeID string  `json:"leave_type_id" validate:"required,uuid4"`
	DateFrom    string  `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo      string  `json:"date_to" validate:"required,datetime=2006-01-02"`
	Description *string `json:"description"`
}

type leaveRequestResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	LeaveTypeID string  `json:"leave_type_id"`
	DateFrom    string  `json:"date_from"`
	DateTo      string  `json:"date_to"`
	State       string  `json:"state"`
	Description *string `json:"description,omitempty"`
}

func toLeaveRequestResponse(req leave.LeaveRequest) leaveRequestResponse {
	return leaveRequestResponse{
		ID:          req.ID,
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		DateFrom:    req.DateFrom.Format("2006-01-02"),
		DateTo:      req.DateTo.Format("2006-01-02"),
		State:       string(req.State),
		Description: req.Description,
	}
}

// CreateRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var payload createLeaveRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("CreateRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	dateFrom, _ := time.Parse("2006-01-02", payload.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", payload.DateTo)

	created, err := h.requestService.Submit(r.Context(), leavesvc.SubmitRequest{
		EmployeeID:  payload.EmployeeID,
		LeaveTypeID: payload.LeaveTypeID,
		DateFrom:    dateFrom,
		DateTo:      dateTo,
		Description: payload.Description,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", toLeaveRequestResponse(created))
}

// ApproveRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if validator.IsEmpty(requestID) {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	req, err := h.requestService.Approve(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved successfully", toLeaveRequestResponse(req))
}

// RefuseRequest implements LeaveHandler.
func (h *LeaveHandlerImpl) RefuseRequest(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if validator.IsEmpty(requestID) {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	req, err := h.requestService.Refuse(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request refused", toLeaveRequestResponse(req))
}

type leaveTypeResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Code  *string `json:"code,omitempty"`
	Color *int    `json:"color,omitempty"`
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.types.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leaveTypeResponse, 0, len(types))
	for _, lt := range types {
		out = append(out, leaveTypeResponse{ID: lt.ID, Name: lt.Name, Code: lt.Code, Color: lt.Color})
	}
	response.Success(w, out)
}

type allocationResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	EmployeeID      string  `json:"employee_id"`
	LeaveTypeID     string  `json:"leave_type_id"`
	NumberOfDays    string  `json:"number_of_days"`
	LeavesTaken     string  `json:"leaves_taken"`
	DateFrom        string  `json:"date_from"`
	DateTo          string  `json:"date_to"`
	State           string  `json:"state"`
	IsAutoAllocated bool    `json:"is_auto_allocated"`
	AnchorDate      *string `json:"anchor_date,omitempty"`
}

// ListAllocations implements LeaveHandler.
func (h *LeaveHandlerImpl) ListAllocations(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	allocations, err := h.allocations.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]allocationResponse, 0, len(allocations))
	for _, alloc := range allocations {
		item := allocationResponse{
			ID:              alloc.ID,
			Name:            alloc.Name,
			EmployeeID:      alloc.EmployeeID,
			LeaveTypeID:     alloc.LeaveTypeID,
			NumberOfDays:    alloc.NumberOfDays.String(),
			LeavesTaken:     alloc.LeavesTaken.String(),
			DateFrom:        alloc.DateFrom.Format("2006-01-02"),
			DateTo:          alloc.DateTo.Format("2006-01-02"),
			State:           string(alloc.State),
			IsAutoAllocated: alloc.IsAutoAllocated,
		}
		if alloc.AnchorDate != nil {
			anchor := alloc.AnchorDate.Format("2006-01-02")
			item.AnchorDate = &anchor
		}
		out = append(out, item)
	}
	response.Success(w, out)
}

// validationDetails flattens validator/v10 errors into a field -> rule map
// for the response envelope.
func validationDetails(err error) map[string]string {
	details := make(map[string]string)
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		details["request"] = err.Error()
		return details
	}
	for _, fe := range fieldErrs {
		details[fe.Field()] = "failed on rule: " + fe.Tag()
	}
	return details
}
