package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/kalibra-hr/workforce-backend-go/internal/handler/http/response"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/validator"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/accrual"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/reconcile"
)

// JobsHandler exposes the batch engines for manual triggering. The same
// code paths run on the cron schedule; these endpoints exist for backfills
// and operational reruns.
type JobsHandler interface {
	RunAccrual(w http.ResponseWriter, r *http.Request)
	RunReconcile(w http.ResponseWriter, r *http.Request)
}

type JobsHandlerImpl struct {
	accrualSvc   *accrual.Service
	reconcileSvc *reconcile.Service
}

func NewJobsHandler(accrualSvc *accrual.Service, reconcileSvc *reconcile.Service) JobsHandler {
	return &JobsHandlerImpl{
		accrualSvc:   accrualSvc,
		reconcileSvc: reconcileSvc,
	}
}

type runAccrualPayload struct {
	// AsOf defaults to today when omitted.
	AsOf string `json:"as_of"`
}

type accrualRunResponse struct {
	EmployeesProcessed int    `json:"employees_processed"`
	DaysAllocated      string `json:"days_allocated"`
}

// RunAccrual implements JobsHandler. Annual accrual runs before sick accrual,
// mirroring the scheduled job order.
func (h *JobsHandlerImpl) RunAccrual(w http.ResponseWriter, r *http.Request) {
	var payload runAccrualPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("RunAccrual decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	asOf := time.Now().UTC()
	if !validator.IsEmpty(payload.AsOf) {
		parsed, ok := validator.IsValidDate(payload.AsOf)
		if !ok {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	annual, err := h.accrualSvc.RunAnnual(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	sick, err := h.accrualSvc.RunSick(r.Context(), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]accrualRunResponse{
		"annual": {
			EmployeesProcessed: annual.EmployeesProcessed,
			DaysAllocated:      annual.TotalDaysAllocated.String(),
		},
		"sick": {
			EmployeesProcessed: sick.EmployeesProcessed,
			DaysAllocated:      sick.TotalDaysAllocated.String(),
		},
	})
}

type runReconcilePayload struct {
	// Month defaults to the current month when omitted.
	Month      string `json:"month"`
	EmployeeID string `json:"employee_id"`
}

type reconcileRunResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// RunReconcile implements JobsHandler.
func (h *JobsHandlerImpl) RunReconcile(w http.ResponseWriter, r *http.Request) {
	var payload runReconcilePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("RunReconcile decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if !validator.IsEmpty(payload.Month) {
		y, m, ok := validator.IsValidYearMonth(payload.Month)
		if !ok {
			response.BadRequest(w, "month must be a valid month (YYYY-MM)", nil)
			return
		}
		year, month = y, m
	}

	result, err := h.reconcileSvc.ReconcileMonth(r.Context(), year, month, payload.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reconcileRunResponse{
		Created: result.Created,
		Updated: result.Updated,
	})
}
