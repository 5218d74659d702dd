package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrOutsideWorkWindow = errors.New("clock-in is not allowed outside the work window")
	ErrDuplicateClockIn  = errors.New("you have already clocked in today")

	// Clock-out errors
	ErrNoOpenClockIn           = errors.New("no open clock-in found to clock out of")
	ErrAlreadyCompletedToday   = errors.New("you have already clocked in and out today")
	ErrBlockedByLeaveOrAbsence = errors.New("today's record is leave or absent and cannot be clocked out")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
)
