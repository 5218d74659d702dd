package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/activity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/leave"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	leave.ApprovalLogRepository
	worker.WorkerRepository
	activityRepo      activity.ActivityRepository
	attendanceService attendance.AttendanceService
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	approvalLogRepo leave.ApprovalLogRepository,
	workerRepo worker.WorkerRepository,
	activityRepo activity.ActivityRepository,
	attendanceService attendance.AttendanceService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveRequestRepository: leaveRepo,
		ApprovalLogRepository:  approvalLogRepo,
		WorkerRepository:       workerRepo,
		activityRepo:           activityRepo,
		attendanceService:      attendanceService,
	}
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	w, err := l.WorkerRepository.GetByID(ctx, req.WorkerID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	submitterRole := worker.Role(req.SubmitterRole)
	if !submitterRole.Valid() {
		submitterRole = w.Role
	}

	initial, err := leave.InitialStatus(submitterRole)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	request := leave.LeaveRequest{
		ID:            uuid.NewString(),
		WorkerID:      w.ID,
		StartDate:     startDate,
		EndDate:       endDate,
		LeaveType:     req.LeaveType,
		Justification: req.Justification,
		EvidenceRef:   req.EvidenceRef,
		SubmitterRole: submitterRole,
		Status:        initial,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.WorkerName = &w.Name

	l.audit(ctx, w.ID, activity.TypeLeaveSubmit,
		fmt.Sprintf("%s submitted %s leave for %s to %s", w.Name, req.LeaveType, req.StartDate, req.EndDate))

	return toResponse(created), nil
}

// Decide implements leave.LeaveService.
func (l *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	decision := leave.DecisionApproved
	if req.Action == "reject" {
		decision = leave.DecisionRejected
	}
	if decision == leave.DecisionRejected && req.Note == "" {
		return leave.RequestResponse{}, leave.ErrNoteRequired
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, req.RequestID)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	next, err := leave.NextStatus(worker.Role(req.ApproverRole), request.Status, decision)
	if err != nil {
		return leave.RequestResponse{}, err
	}

	// The status move and its log entry commit together; the
	// expected-status guard makes the first decision the only winner.
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		moved, err := l.LeaveRequestRepository.UpdateStatus(txCtx, request.ID, request.Status, next)
		if err != nil {
			return fmt.Errorf("failed to update leave request status: %w", err)
		}
		if !moved {
			return leave.ErrNotAuthorizedForState
		}

		entry := leave.ApprovalLogEntry{
			ID:             uuid.NewString(),
			LeaveRequestID: request.ID,
			ApproverID:     req.ApproverID,
			Decision:       decision,
			Note:           req.Note,
		}
		if _, err := l.ApprovalLogRepository.Append(txCtx, entry); err != nil {
			return fmt.Errorf("failed to append approval log: %w", err)
		}

		return nil
	})
	if err != nil {
		return leave.RequestResponse{}, err
	}

	request.Status = next

	l.audit(ctx, req.ApproverID, activity.TypeLeaveDecision,
		fmt.Sprintf("leave request %s moved to %s by %s", request.ID, next, req.ApproverRole))

	// Terminal approval drives the clock ledger. Injection runs after
	// the commit and is per-date best-effort: a failed date is logged
	// and the loop continues, the approval itself never unwinds.
	if next == leave.StatusApproved {
		for _, date := range request.DatesIn() {
			if err := l.attendanceService.InjectLeave(ctx, request.WorkerID, date); err != nil {
				slog.Error("Failed to inject leave into attendance",
					"leave_request_id", request.ID,
					"worker_id", request.WorkerID,
					"date", date.Format("2006-01-02"),
					"error", err,
				)
			}
		}
	}

	return l.withLog(ctx, request)
}

// PendingForRole implements leave.LeaveService.
func (l *LeaveServiceImpl) PendingForRole(ctx context.Context, role string) ([]leave.RequestResponse, error) {
	statuses := leave.PendingStatusesFor(worker.Role(role))
	if statuses == nil {
		return []leave.RequestResponse{}, nil
	}

	requests, err := l.LeaveRequestRepository.ListByStatuses(ctx, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}

	return responses, nil
}

// History implements leave.LeaveService.
func (l *LeaveServiceImpl) History(ctx context.Context, workerID string) ([]leave.RequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave history: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, r := range requests {
		resp, err := l.withLog(ctx, r)
		if err != nil {
			return nil, err
		}
		responses = append(responses, resp)
	}

	return responses, nil
}

func (l *LeaveServiceImpl) withLog(ctx context.Context, request leave.LeaveRequest) (leave.RequestResponse, error) {
	log, err := l.ApprovalLogRepository.ListByRequest(ctx, request.ID)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to list approval log: %w", err)
	}
	request.Log = log
	return toResponse(request), nil
}

func toResponse(r leave.LeaveRequest) leave.RequestResponse {
	resp := leave.RequestResponse{
		ID:            r.ID,
		WorkerID:      r.WorkerID,
		StartDate:     r.StartDate.Format("2006-01-02"),
		EndDate:       r.EndDate.Format("2006-01-02"),
		LeaveType:     r.LeaveType,
		Justification: r.Justification,
		EvidenceRef:   r.EvidenceRef,
		Status:        r.Status,
		SubmittedAt:   r.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
	if r.WorkerName != nil {
		resp.WorkerName = *r.WorkerName
	}
	for _, entry := range r.Log {
		logResp := leave.ApprovalLogResponse{
			ApproverID: entry.ApproverID,
			Decision:   string(entry.Decision),
			Note:       entry.Note,
			DecidedAt:  entry.DecidedAt.Format("2006-01-02 15:04:05"),
		}
		if entry.ApproverName != nil {
			logResp.ApproverName = *entry.ApproverName
		}
		resp.Log = append(resp.Log, logResp)
	}
	return resp
}

func (l *LeaveServiceImpl) audit(ctx context.Context, actorID string, typ activity.Type, description string) {
	entry := activity.Entry{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Type:        typ,
		Description: description,
	}
	if err := l.activityRepo.Append(ctx, entry); err != nil {
		slog.Error("Failed to append activity log entry", "type", typ, "error", err)
	}
}
