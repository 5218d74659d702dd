package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/response"
)

type AttendanceHandler interface {
	RecordEvent(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	TodayStatus(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// RecordEvent implements AttendanceHandler.
func (a *AttendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.Action == "" {
		req.Action = attendance.ActionAuto
	}

	result, err := a.attendanceService.RecordEvent(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

// List implements AttendanceHandler.
func (a *AttendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := attendance.Filter{}
	optional := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}

	filter.WorkerID = optional("worker_id")
	filter.Date = optional("date")
	filter.StartDate = optional("start_date")
	filter.EndDate = optional("end_date")
	filter.LocationID = optional("location_id")
	if v := q.Get("status"); v != "" {
		status := attendance.Status(v)
		filter.Status = &status
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}

	result, err := a.attendanceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalItems) / filter.Limit
	if int(result.TotalItems)%filter.Limit > 0 {
		totalPages++
	}

	response.SuccessWithMeta(w, result.Records, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.TotalItems,
		TotalPages: totalPages,
	})
}

// TodayStatus implements AttendanceHandler.
func (a *AttendanceHandlerImpl) TodayStatus(w http.ResponseWriter, r *http.Request) {
	entries, err := a.attendanceService.TodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
