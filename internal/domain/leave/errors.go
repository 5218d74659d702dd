package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("leave request not found")
	ErrNotAuthorizedForState = errors.New("you are not authorized to decide this request in its current state")
	ErrRoleCannotSubmit      = errors.New("this role cannot submit leave requests")
	ErrNoteRequired          = errors.New("a note is required when rejecting a request")
	ErrInvalidDateRange      = errors.New("start date must not be after end date")
)
