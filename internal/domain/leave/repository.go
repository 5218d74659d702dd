package leave

import "context"

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// UpdateStatus moves a request to a new state. The conditional
	// expected-status guard keeps two racing approvers from both
	// winning; false means the request was no longer in expectedStatus.
	UpdateStatus(ctx context.Context, id string, expected, next Status) (bool, error)

	// ListByStatuses returns requests sitting in any of the given
	// states, oldest submission first.
	ListByStatuses(ctx context.Context, statuses []Status) ([]LeaveRequest, error)

	// ListByWorker returns a worker's own requests, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]LeaveRequest, error)
}

// ApprovalLogRepository - interface for leave_approval_log table.
// Append-only; there is deliberately no update or delete.
type ApprovalLogRepository interface {
	Append(ctx context.Context, entry ApprovalLogEntry) (ApprovalLogEntry, error)
	ListByRequest(ctx context.Context, leaveRequestID string) ([]ApprovalLogEntry, error)
}
