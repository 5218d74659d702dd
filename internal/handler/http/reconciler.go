package http

import (
	"net/http"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/response"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/cron"
)

type ReconcilerHandler interface {
	Status(w http.ResponseWriter, r *http.Request)
}

type ReconcilerHandlerImpl struct {
	recorder *cron.RunRecorder
}

func NewReconcilerHandler(recorder *cron.RunRecorder) ReconcilerHandler {
	return &ReconcilerHandlerImpl{recorder: recorder}
}

// Status exposes the last reconciliation outcome for monitoring.
func (h *ReconcilerHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.recorder.Snapshot())
}
