package worker

import "context"

// WorkerRepository reads the roster maintained by the worker management
// system.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)

	// GetByQRCode resolves a scanned QR payload to a worker.
	GetByQRCode(ctx context.Context, qrCode string) (Worker, error)

	// ListActive returns every worker currently marked active.
	ListActive(ctx context.Context) ([]Worker, error)

	// ListActiveIDs is the reconciler's working set A.
	ListActiveIDs(ctx context.Context) ([]string, error)
}
