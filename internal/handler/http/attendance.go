package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kalibra-hr/workforce-backend-go/internal/domain/attendance"
	"github.com/kalibra-hr/workforce-backend-go/internal/handler/http/response"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/dateutil"
	"github.com/kalibra-hr/workforce-backend-go/internal/pkg/validator"
	"github.com/kalibra-hr/workforce-backend-go/internal/service/summary"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendances attendance.AttendanceRepository
	summarySvc  *summary.Service
	validate    *playground.Validate
}

func NewAttendanceHandler(attendances attendance.AttendanceRepository, summarySvc *summary.Service, validate *playground.Validate) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendances: attendances,
		summarySvc:  summarySvc,
		validate:    validate,
	}
}

type recordAttendancePayload struct {
	EmployeeID  string  `json:"employee_id" validate:"required,uuid4"`
	CheckIn     string  `json:"check_in" validate:"required"`
	CheckOut    *string `json:"check_out"`
	WorkingType string  `json:"working_type" validate:"required,oneof=office remote"`
	Note        *string `json:"note"`
}

// Record implements AttendanceHandler. This is the check-in feed: badge
// readers and the self-service app post actual presence here. Days already
// holding a weekend fill-in are promoted; any other existing row wins.
func (h *AttendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var payload recordAttendancePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		slog.Error("Record decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		response.ValidationError(w, validationDetails(err))
		return
	}

	checkIn, err := time.Parse(time.RFC3339, payload.CheckIn)
	if err != nil {
		response.BadRequest(w, "check_in must be an RFC 3339 timestamp", nil)
		return
	}

	var checkOut *time.Time
	if payload.CheckOut != nil {
		parsed, err := time.Parse(time.RFC3339, *payload.CheckOut)
		if err != nil {
			response.BadRequest(w, "check_out must be an RFC 3339 timestamp", nil)
			return
		}
		if parsed.Before(checkIn) {
			response.BadRequest(w, "check_out must not precede check_in", nil)
			return
		}
		checkOut = &parsed
	}

	row := attendance.Attendance{
		ID:          uuid.NewString(),
		EmployeeID:  payload.EmployeeID,
		Day:         dateutil.Date(checkIn),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		WorkingType: attendance.WorkingType(payload.WorkingType),
		Note:        payload.Note,
	}

	existing, err := h.attendances.GetByEmployeeAndDay(r.Context(), row.EmployeeID, row.Day)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if existing != nil {
		if !existing.WorkingType.CanPromoteTo(row.WorkingType) {
			response.Conflict(w, "Attendance already recorded for this day")
			return
		}
		if _, err := h.attendances.UpsertDay(r.Context(), row); err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Attendance recorded", toAttendanceResponse(row))
		return
	}

	created, err := h.attendances.Create(r.Context(), row)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Attendance recorded", toAttendanceResponse(created))
}

type attendanceResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Day         string  `json:"day"`
	CheckIn     string  `json:"check_in"`
	CheckOut    *string `json:"check_out,omitempty"`
	WorkingType string  `json:"working_type"`
	Note        *string `json:"note,omitempty"`
}

func toAttendanceResponse(row attendance.Attendance) attendanceResponse {
	item := attendanceResponse{
		ID:          row.ID,
		EmployeeID:  row.EmployeeID,
		Day:         row.Day.Format("2006-01-02"),
		CheckIn:     row.CheckIn.Format(time.RFC3339),
		WorkingType: string(row.WorkingType),
		Note:        row.Note,
	}
	if row.CheckOut != nil {
		checkOut := row.CheckOut.Format(time.RFC3339)
		item.CheckOut = &checkOut
	}
	return item
}

// List implements AttendanceHandler. This is the ledger query surface:
// every row of one employee inside [from, to], ordered by day.
func (h *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	employeeID := query.Get("employee_id")
	if validator.IsEmpty(employeeID) {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	from, ok := validator.IsValidDate(query.Get("from"))
	if !ok {
		response.BadRequest(w, "from must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, ok := validator.IsValidDate(query.Get("to"))
	if !ok {
		response.BadRequest(w, "to must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "to must not precede from", nil)
		return
	}

	rows, err := h.attendances.ListByEmployeeRange(r.Context(), employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]attendanceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAttendanceResponse(row))
	}
	response.Success(w, out)
}

type employeeSummaryResponse struct {
	EmployeeID           string  `json:"employee_id"`
	EmployeeName         string  `json:"employee_name"`
	TotalWorkingDays     int     `json:"total_working_days"`
	WorkedDays           int     `json:"worked_days"`
	OfficeDays           int     `json:"office_days"`
	RemoteDays           int     `json:"remote_days"`
	LeaveDays            int     `json:"leave_days"`
	HolidayDays          int     `json:"holiday_days"`
	SickDays             int     `json:"sick_days"`
	WeekendDays          int     `json:"weekend_days"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// Summary implements AttendanceHandler. employee_id accepts a comma
// separated list; omitting it summarizes every active employee.
func (h *AttendanceHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from, ok := validator.IsValidDate(query.Get("from"))
	if !ok {
		response.BadRequest(w, "from must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, ok := validator.IsValidDate(query.Get("to"))
	if !ok {
		response.BadRequest(w, "to must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	if to.Before(from) {
		response.BadRequest(w, "to must not precede from", nil)
		return
	}

	var employeeIDs []string
	if raw := query.Get("employee_id"); !validator.IsEmpty(raw) {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				employeeIDs = append(employeeIDs, id)
			}
		}
	}

	summaries, err := h.summarySvc.Range(r.Context(), employeeIDs, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]employeeSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, employeeSummaryResponse{
			EmployeeID:           s.EmployeeID,
			EmployeeName:         s.EmployeeName,
			TotalWorkingDays:     s.TotalWorkingDays,
			WorkedDays:           s.WorkedDays,
			OfficeDays:           s.OfficeDays,
			RemoteDays:           s.RemoteDays,
			LeaveDays:            s.LeaveDays,
			HolidayDays:          s.HolidayDays,
			SickDays:             s.SickDays,
			WeekendDays:          s.WeekendDays,
			AttendancePercentage: s.AttendancePercentage,
		})
	}
	response.Success(w, out)
}
