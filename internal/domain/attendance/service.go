package attendance

import (
	"context"
	"time"
)

// AttendanceService is the clock ledger: it decides clock-in versus
// clock-out, validates the work-window policy and owns status
// derivation for physically earned records.
type AttendanceService interface {
	// RecordEvent processes one recognition event end to end.
	RecordEvent(ctx context.Context, req RecordEventRequest) (EventResponse, error)

	// InjectLeave idempotently marks the given day as leave. Called by
	// the leave workflow once per approved date.
	InjectLeave(ctx context.Context, workerID string, date time.Time) error

	// List retrieves attendance records for reporting.
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// TodayStatus returns the active roster joined with today's records.
	TodayStatus(ctx context.Context) ([]DayStatusEntry, error)
}
