package worker

import "errors"

var (
	ErrWorkerNotFound = errors.New("worker not found")
	ErrQRCodeUnknown  = errors.New("QR code is not registered to any worker")
)
