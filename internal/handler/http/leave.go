package http

import (
	"encoding/json"
	"net/http"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/leave"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/handler/http/response"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
	jwtService   jwt.Service
}

func NewLeaveHandler(leaveService leave.LeaveService, jwtService jwt.Service) LeaveHandler {
	return &LeaveHandlerImpl{
		leaveService: leaveService,
		jwtService:   jwtService,
	}
}

// Submit implements LeaveHandler.
func (l *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actor, err := l.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Submissions are always on the caller's own behalf.
	if actor.WorkerID != "" {
		req.WorkerID = actor.WorkerID
	}
	req.SubmitterRole = actor.Role

	result, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// Decide implements LeaveHandler.
func (l *LeaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	actor, err := l.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = actor.UserID
	req.ApproverRole = actor.Role

	result, err := l.leaveService.Decide(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

// Pending implements LeaveHandler.
func (l *LeaveHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	actor, err := l.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := l.leaveService.PendingForRole(r.Context(), actor.Role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// History implements LeaveHandler.
func (l *LeaveHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	actor, err := l.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	workerID := actor.WorkerID
	if workerID == "" {
		response.BadRequest(w, "Caller has no roster entry", nil)
		return
	}

	result, err := l.leaveService.History(r.Context(), workerID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
