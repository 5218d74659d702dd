package attendance

import (
	"fmt"
	"time"
)

// Status classifies a day's attendance outcome.
type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusOvertime   Status = "overtime"
	StatusEarlyLeave Status = "early_leave"
	StatusLeave      Status = "leave"
	StatusAbsent     Status = "absent"
)

// Overridden reports whether the status was injected by the system
// (leave approval or absence sweep) rather than earned by clocking.
func (s Status) Overridden() bool {
	return s == StatusLeave || s == StatusAbsent
}

// Method is how the worker's identity was verified for the event.
type Method string

const (
	MethodFace   Method = "face"
	MethodQR     Method = "qr"
	MethodManual Method = "manual"
	MethodSystem Method = "system"
)

// ActionHint tells the ledger which half of the attendance event the
// caller intends. Auto lets the ledger decide from today's record.
type ActionHint string

const (
	ActionClockIn  ActionHint = "clock_in"
	ActionClockOut ActionHint = "clock_out"
	ActionAuto     ActionHint = "auto"
)

// Attendance is one worker's record for one work day. At most one row
// exists per (WorkerID, WorkDate); the storage layer enforces this with
// a unique constraint.
type Attendance struct {
	ID          string
	WorkerID    string
	WorkDate    time.Time // date component only, local to the site timezone
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkedMins  *int
	Status      Status
	Method      Method
	LocationID  *string
	EvidenceRef *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	WorkerName *string
}

// Open reports whether the record has a clock-in waiting for its
// clock-out.
func (a Attendance) Open() bool {
	return a.ClockIn != nil && a.ClockOut == nil
}

// Completed reports whether both halves of the event were recorded.
func (a Attendance) Completed() bool {
	return a.ClockIn != nil && a.ClockOut != nil
}

// Policy is the configured work-window and duration thresholds. Status
// classification is a pure function of timestamps and this policy; no
// other code path may set a non-override status.
type Policy struct {
	WorkWindowStartHour int
	WorkWindowEndHour   int
	GraceCutoffHour     int
	GraceCutoffMinute   int
	NormalWorkMinutes   int
	FullWorkMinutes     int
}

// ParsePolicy builds a Policy from the configured "HH:MM" grace cutoff.
func ParsePolicy(startHour, endHour int, graceCutoff string, normalMins, fullMins int) (Policy, error) {
	t, err := time.Parse("15:04", graceCutoff)
	if err != nil {
		return Policy{}, fmt.Errorf("invalid grace cutoff %q: %w", graceCutoff, err)
	}
	return Policy{
		WorkWindowStartHour: startHour,
		WorkWindowEndHour:   endHour,
		GraceCutoffHour:     t.Hour(),
		GraceCutoffMinute:   t.Minute(),
		NormalWorkMinutes:   normalMins,
		FullWorkMinutes:     fullMins,
	}, nil
}

// InsideWorkWindow reports whether clock-in is permitted at the given
// local time. The window start is inclusive, the end exclusive.
func (p Policy) InsideWorkWindow(nowLocal time.Time) bool {
	h := nowLocal.Hour()
	return h >= p.WorkWindowStartHour && h < p.WorkWindowEndHour
}

// ClassifyClockIn derives the clock-in status: late strictly after the
// grace cutoff, present otherwise.
func (p Policy) ClassifyClockIn(nowLocal time.Time) Status {
	cutoff := time.Date(
		nowLocal.Year(), nowLocal.Month(), nowLocal.Day(),
		p.GraceCutoffHour, p.GraceCutoffMinute, 0, 0,
		nowLocal.Location(),
	)
	if nowLocal.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// ClassifyClockOut derives the final status from the worked duration.
// Both thresholds are half-open: working exactly NormalWorkMinutes or
// exactly FullWorkMinutes retains the clock-in status.
func (p Policy) ClassifyClockOut(clockInStatus Status, workedMins int) Status {
	switch {
	case workedMins > p.FullWorkMinutes:
		return StatusOvertime
	case workedMins < p.NormalWorkMinutes:
		return StatusEarlyLeave
	default:
		return clockInStatus
	}
}
