package leave

import (
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/validator"
)

type SubmitRequest struct {
	WorkerID      string  `json:"worker_id"`
	StartDate     string  `json:"start_date"` // YYYY-MM-DD
	EndDate       string  `json:"end_date"`   // YYYY-MM-DD
	LeaveType     string  `json:"leave_type"`
	Justification string  `json:"justification"`
	EvidenceRef   *string `json:"evidence_ref,omitempty"`

	// Filled from the caller's token, not the body.
	SubmitterRole string `json:"-"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "must be a valid YYYY-MM-DD date",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must be a valid YYYY-MM-DD date",
		})
	}

	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if validator.IsEmpty(r.LeaveType) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type is required",
		})
	}

	if validator.IsEmpty(r.Justification) {
		errs = append(errs, validator.ValidationError{
			Field:   "justification",
			Message: "justification is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideRequest struct {
	RequestID string `json:"-"`
	Action    string `json:"action"` // "approve" | "reject"
	Note      string `json:"note"`

	// Filled from the caller's token.
	ApproverID   string `json:"-"`
	ApproverRole string `json:"-"`
}

func (r *DecideRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "request id is required",
		})
	}

	if r.Action != "approve" && r.Action != "reject" {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approve or reject",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApprovalLogResponse struct {
	ApproverID   string `json:"approver_id"`
	ApproverName string `json:"approver_name,omitempty"`
	Decision     string `json:"decision"`
	Note         string `json:"note,omitempty"`
	DecidedAt    string `json:"decided_at"`
}

type RequestResponse struct {
	ID            string                `json:"id"`
	WorkerID      string                `json:"worker_id"`
	WorkerName    string                `json:"worker_name,omitempty"`
	StartDate     string                `json:"start_date"`
	EndDate       string                `json:"end_date"`
	LeaveType     string                `json:"leave_type"`
	Justification string                `json:"justification"`
	EvidenceRef   *string               `json:"evidence_ref,omitempty"`
	Status        Status                `json:"status"`
	SubmittedAt   string                `json:"submitted_at"`
	Log           []ApprovalLogResponse `json:"approval_log,omitempty"`
}
