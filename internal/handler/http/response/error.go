package response

import (
	"errors"
	"net/http"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/leave"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/identity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance policy errors
	case errors.Is(err, attendance.ErrOutsideWorkWindow):
		PolicyViolation(w, "OUTSIDE_WORK_WINDOW", err.Error())
	case errors.Is(err, attendance.ErrDuplicateClockIn):
		Conflict(w, "DUPLICATE_CLOCK_IN", err.Error())
	case errors.Is(err, attendance.ErrNoOpenClockIn):
		PolicyViolation(w, "NO_OPEN_CLOCK_IN", err.Error())
	case errors.Is(err, attendance.ErrAlreadyCompletedToday):
		Conflict(w, "ALREADY_COMPLETED_TODAY", err.Error())
	case errors.Is(err, attendance.ErrBlockedByLeaveOrAbsence):
		Conflict(w, "BLOCKED_BY_LEAVE_OR_ABSENCE", err.Error())
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Worker resolution errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrQRCodeUnknown):
		NotFound(w, "QR code is not registered to any worker")
	case errors.Is(err, identity.ErrNotRecognized):
		NotFound(w, "Face was not recognized")
	case errors.Is(err, identity.ErrProviderUnavailable):
		ServiceUnavailable(w, "IDENTITY_PROVIDER_UNAVAILABLE", "Identity provider is unavailable, try again later")

	// Leave workflow errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrNotAuthorizedForState):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrRoleCannotSubmit):
		Forbidden(w, err.Error())
	case errors.Is(err, leave.ErrNoteRequired):
		PolicyViolation(w, "NOTE_REQUIRED", err.Error())
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
