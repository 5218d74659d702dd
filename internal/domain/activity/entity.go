package activity

import "time"

// Type tags an audit entry.
type Type string

const (
	TypeClockIn       Type = "ATTENDANCE_CLOCK_IN"
	TypeClockOut      Type = "ATTENDANCE_CLOCK_OUT"
	TypeLeaveSubmit   Type = "LEAVE_SUBMITTED"
	TypeLeaveDecision Type = "LEAVE_DECISION"
	TypeSystem        Type = "SYSTEM"
)

// Entry is one audit row. The audit trail is best-effort: writers log
// and continue when an append fails.
type Entry struct {
	ID          string
	ActorID     string
	Type        Type
	Description string
	CreatedAt   time.Time
}
