package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
type AttendanceRepository interface {
	// CreateIfAbsent inserts a clock-in record unless one already exists
	// for (worker, work date). Returns false when the row was already
	// there, closing the duplicate clock-in race without a prior read.
	CreateIfAbsent(ctx context.Context, att Attendance) (Attendance, bool, error)

	// GetByWorkerAndDate returns the record for the given worker and
	// work date, or nil when none exists.
	GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (*Attendance, error)

	// CloseOpenSession sets clock-out, worked minutes and the final
	// status with a conditional update (clock_in set, clock_out still
	// null). Returns false when no open session matched.
	CloseOpenSession(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status Status) (bool, error)

	// OverrideStatus upserts a system row for the given day: inserts a
	// record with the override status when none exists, otherwise
	// rewrites only the status. Clock times are never touched. Used by
	// leave injection.
	OverrideStatus(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status Status) error

	// CreateSystemIfAbsent inserts a system row only when the worker
	// has no record for the day at all; an existing row of any status
	// wins. Returns false when nothing was inserted. Used by the
	// absence sweep.
	CreateSystemIfAbsent(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status Status) (bool, error)

	// List retrieves records matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)

	// ListByDate returns every record for one work date.
	ListByDate(ctx context.Context, workDate time.Time) ([]Attendance, error)

	// WorkerIDsWithRecordOn is the reconciler's working set B: workers
	// holding any record (any status) for the given work date.
	WorkerIDsWithRecordOn(ctx context.Context, workDate time.Time) ([]string, error)
}
