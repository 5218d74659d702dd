package attendance

import (
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/validator"
)

// RecordEventRequest is one clock event. Exactly one of WorkerID,
// QRCode or FacePayload identifies the worker: QR codes resolve against
// the roster, face payloads go through the recognition service.
type RecordEventRequest struct {
	WorkerID    string     `json:"worker_id,omitempty"`
	QRCode      string     `json:"qr_code,omitempty"`
	FacePayload string     `json:"face_payload,omitempty"`
	Action      ActionHint `json:"action"`
	Method      Method     `json:"method"`
	LocationID  *string    `json:"location_id,omitempty"`
	EvidenceB64 string     `json:"evidence_b64,omitempty"`
}

func (r *RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors

	identifiers := 0
	if !validator.IsEmpty(r.WorkerID) {
		identifiers++
	}
	if !validator.IsEmpty(r.QRCode) {
		identifiers++
	}
	if !validator.IsEmpty(r.FacePayload) {
		identifiers++
	}
	if identifiers != 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "exactly one of worker_id, qr_code or face_payload is required",
		})
	}

	switch r.Action {
	case ActionClockIn, ActionClockOut, ActionAuto:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be clock_in, clock_out or auto",
		})
	}

	switch r.Method {
	case MethodFace, MethodQR, MethodManual:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "method",
			Message: "method must be face, qr or manual",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EventResponse struct {
	ID          string  `json:"id"`
	WorkerID    string  `json:"worker_id"`
	WorkDate    string  `json:"work_date"`
	Action      string  `json:"action"`
	Status      Status  `json:"status"`
	ClockInAt   *string `json:"clock_in_at,omitempty"`
	ClockOutAt  *string `json:"clock_out_at,omitempty"`
	WorkedMins  *int    `json:"worked_minutes,omitempty"`
	EvidenceRef *string `json:"evidence_ref,omitempty"`
	Message     string  `json:"message"`
}

type RecordResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name,omitempty"`
	WorkDate   string  `json:"work_date"`
	ClockInAt  *string `json:"clock_in_at,omitempty"`
	ClockOutAt *string `json:"clock_out_at,omitempty"`
	WorkedMins *int    `json:"worked_minutes,omitempty"`
	Status     Status  `json:"status"`
	Method     Method  `json:"verification_method"`
	LocationID *string `json:"location_id,omitempty"`
}

// Filter narrows attendance listings. Dates are "YYYY-MM-DD".
type Filter struct {
	WorkerID   *string
	Date       *string
	StartDate  *string
	EndDate    *string
	LocationID *string
	Status     *Status
	Page       int
	Limit      int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	for field, v := range map[string]*string{
		"date":       f.Date,
		"start_date": f.StartDate,
		"end_date":   f.EndDate,
	} {
		if v == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*v); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: "must be a valid YYYY-MM-DD date",
			})
		}
	}

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 200 {
		f.Limit = 50
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	Records    []RecordResponse `json:"records"`
	TotalItems int64            `json:"total_items"`
}

// DayStatusEntry is one roster row joined with today's record, the
// supervisor's live site view.
type DayStatusEntry struct {
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name"`
	Role       string  `json:"role"`
	ClockInAt  *string `json:"clock_in_at,omitempty"`
	ClockOutAt *string `json:"clock_out_at,omitempty"`
	Status     *Status `json:"status,omitempty"`
}
