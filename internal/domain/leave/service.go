package leave

import "context"

// LeaveService runs the approval workflow.
type LeaveService interface {
	// Submit creates a request; the initial state follows from the
	// submitter's role.
	Submit(ctx context.Context, req SubmitRequest) (RequestResponse, error)

	// Decide applies one approve/reject decision. On terminal approval
	// it drives the clock ledger to inject leave for every covered
	// date; per-date injection failures are logged, never rolled back.
	Decide(ctx context.Context, req DecideRequest) (RequestResponse, error)

	// PendingForRole lists requests awaiting the given approver role.
	PendingForRole(ctx context.Context, role string) ([]RequestResponse, error)

	// History lists a worker's own requests with their approval log.
	History(ctx context.Context, workerID string) ([]RequestResponse, error)
}
