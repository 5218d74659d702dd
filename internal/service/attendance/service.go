package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/activity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/storage"
	"github.com/google/uuid"
)

// IdentityResolver maps a face payload to a worker ID. Satisfied by
// identity.Client.
type IdentityResolver interface {
	Resolve(ctx context.Context, payload string) (string, error)
}

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	worker.WorkerRepository
	activityRepo activity.ActivityRepository
	identity     IdentityResolver
	fileStorage  storage.FileStorage
	policy       attendance.Policy
	loc          *time.Location
	now          func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	activityRepo activity.ActivityRepository,
	identity IdentityResolver,
	fileStorage storage.FileStorage,
	policy attendance.Policy,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		WorkerRepository:     workerRepo,
		activityRepo:         activityRepo,
		identity:             identity,
		fileStorage:          fileStorage,
		policy:               policy,
		loc:                  loc,
		now:                  time.Now,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// dateOf truncates a local time to its date at midnight.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RecordEvent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordEvent(ctx context.Context, req attendance.RecordEventRequest) (attendance.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.EventResponse{}, err
	}

	w, err := a.resolveWorker(ctx, req)
	if err != nil {
		return attendance.EventResponse{}, err
	}

	nowLocal := a.now().In(a.loc)
	workDate := dateOf(nowLocal)

	action := req.Action
	if action == attendance.ActionAuto {
		action, err = a.resolveAutoAction(ctx, w.ID, workDate)
		if err != nil {
			return attendance.EventResponse{}, err
		}
	}

	switch action {
	case attendance.ActionClockIn:
		return a.clockIn(ctx, w, req, nowLocal, workDate)
	default:
		return a.clockOut(ctx, w, nowLocal, workDate)
	}
}

func (a *AttendanceServiceImpl) resolveWorker(ctx context.Context, req attendance.RecordEventRequest) (worker.Worker, error) {
	switch {
	case req.QRCode != "":
		return a.WorkerRepository.GetByQRCode(ctx, req.QRCode)
	case req.FacePayload != "":
		workerID, err := a.identity.Resolve(ctx, req.FacePayload)
		if err != nil {
			return worker.Worker{}, err
		}
		return a.WorkerRepository.GetByID(ctx, workerID)
	default:
		return a.WorkerRepository.GetByID(ctx, req.WorkerID)
	}
}

// resolveAutoAction picks the event half from today's record: no record
// means clock-in, an open record means clock-out, a completed record is
// terminal for the day.
func (a *AttendanceServiceImpl) resolveAutoAction(ctx context.Context, workerID string, workDate time.Time) (attendance.ActionHint, error) {
	existing, err := a.AttendanceRepository.GetByWorkerAndDate(ctx, workerID, workDate)
	if err != nil {
		return "", fmt.Errorf("failed to resolve auto action: %w", err)
	}

	switch {
	case existing == nil:
		return attendance.ActionClockIn, nil
	case existing.Status.Overridden():
		return "", attendance.ErrBlockedByLeaveOrAbsence
	case existing.Open():
		return attendance.ActionClockOut, nil
	default:
		return "", attendance.ErrAlreadyCompletedToday
	}
}

func (a *AttendanceServiceImpl) clockIn(ctx context.Context, w worker.Worker, req attendance.RecordEventRequest, nowLocal, workDate time.Time) (attendance.EventResponse, error) {
	if !a.policy.InsideWorkWindow(nowLocal) {
		return attendance.EventResponse{}, attendance.ErrOutsideWorkWindow
	}

	status := a.policy.ClassifyClockIn(nowLocal)

	var evidenceRef *string
	if req.EvidenceB64 != "" && a.fileStorage != nil {
		ref, err := storage.SaveEvidencePhoto(ctx, a.fileStorage, w.ID, string(attendance.ActionClockIn), nowLocal, req.EvidenceB64)
		if err != nil {
			// Evidence is best-effort: the clock event must not fail
			// because the photo could not be stored.
			slog.Error("Failed to store clock-in evidence", "worker_id", w.ID, "error", err)
		} else {
			evidenceRef = &ref
		}
	}

	clockInUTC := nowLocal.UTC()
	att := attendance.Attendance{
		ID:          uuid.NewString(),
		WorkerID:    w.ID,
		WorkDate:    workDate,
		ClockIn:     &clockInUTC,
		Status:      status,
		Method:      req.Method,
		LocationID:  req.LocationID,
		EvidenceRef: evidenceRef,
	}

	created, inserted, err := a.AttendanceRepository.CreateIfAbsent(ctx, att)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record clock-in: %w", err)
	}
	if !inserted {
		return attendance.EventResponse{}, attendance.ErrDuplicateClockIn
	}

	a.audit(ctx, w.ID, activity.TypeClockIn,
		fmt.Sprintf("%s clocked in at %s (%s)", w.Name, nowLocal.Format("15:04"), status))

	message := "Clock-in recorded"
	if status == attendance.StatusLate {
		message = "Clock-in recorded after the grace cutoff"
	}

	return attendance.EventResponse{
		ID:          created.ID,
		WorkerID:    w.ID,
		WorkDate:    workDate.Format("2006-01-02"),
		Action:      string(attendance.ActionClockIn),
		Status:      created.Status,
		ClockInAt:   timePtrToString(created.ClockIn),
		EvidenceRef: created.EvidenceRef,
		Message:     message,
	}, nil
}

func (a *AttendanceServiceImpl) clockOut(ctx context.Context, w worker.Worker, nowLocal, workDate time.Time) (attendance.EventResponse, error) {
	existing, err := a.AttendanceRepository.GetByWorkerAndDate(ctx, w.ID, workDate)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.EventResponse{}, attendance.ErrNoOpenClockIn
	}
	if existing.Status.Overridden() {
		return attendance.EventResponse{}, attendance.ErrBlockedByLeaveOrAbsence
	}
	if !existing.Open() {
		return attendance.EventResponse{}, attendance.ErrNoOpenClockIn
	}

	clockOutUTC := nowLocal.UTC()
	workedMins := int(clockOutUTC.Sub(*existing.ClockIn).Minutes())
	finalStatus := a.policy.ClassifyClockOut(existing.Status, workedMins)

	closed, err := a.AttendanceRepository.CloseOpenSession(ctx, w.ID, workDate, clockOutUTC, workedMins, finalStatus)
	if err != nil {
		return attendance.EventResponse{}, fmt.Errorf("failed to record clock-out: %w", err)
	}
	if !closed {
		// Lost the race: someone else closed the session first.
		return attendance.EventResponse{}, attendance.ErrNoOpenClockIn
	}

	a.audit(ctx, w.ID, activity.TypeClockOut,
		fmt.Sprintf("%s clocked out at %s after %d minutes (%s)", w.Name, nowLocal.Format("15:04"), workedMins, finalStatus))

	return attendance.EventResponse{
		ID:         existing.ID,
		WorkerID:   w.ID,
		WorkDate:   workDate.Format("2006-01-02"),
		Action:     string(attendance.ActionClockOut),
		Status:     finalStatus,
		ClockInAt:  timePtrToString(existing.ClockIn),
		ClockOutAt: timePtrToString(&clockOutUTC),
		WorkedMins: &workedMins,
		Message:    "Clock-out recorded",
	}, nil
}

// InjectLeave implements attendance.AttendanceService. The override is
// idempotent: re-approving overlapping requests lands on the same rows.
func (a *AttendanceServiceImpl) InjectLeave(ctx context.Context, workerID string, date time.Time) error {
	workDate := dateOf(date.In(a.loc))

	existing, err := a.AttendanceRepository.GetByWorkerAndDate(ctx, workerID, workDate)
	if err != nil {
		return fmt.Errorf("failed to check existing attendance: %w", err)
	}
	if existing != nil && existing.Completed() && !existing.Status.Overridden() {
		slog.Warn("Leave injection is overwriting an earned attendance status",
			"worker_id", workerID,
			"work_date", workDate.Format("2006-01-02"),
			"previous_status", existing.Status,
		)
	}

	if err := a.AttendanceRepository.OverrideStatus(ctx, workerID, workDate, a.now().UTC(), attendance.StatusLeave); err != nil {
		return fmt.Errorf("failed to inject leave for %s: %w", workDate.Format("2006-01-02"), err)
	}

	return nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	resp := attendance.ListResponse{
		Records:    make([]attendance.RecordResponse, 0, len(records)),
		TotalItems: total,
	}
	for _, att := range records {
		rec := attendance.RecordResponse{
			ID:         att.ID,
			WorkerID:   att.WorkerID,
			WorkDate:   att.WorkDate.Format("2006-01-02"),
			ClockInAt:  timePtrToString(att.ClockIn),
			ClockOutAt: timePtrToString(att.ClockOut),
			WorkedMins: att.WorkedMins,
			Status:     att.Status,
			Method:     att.Method,
			LocationID: att.LocationID,
		}
		if att.WorkerName != nil {
			rec.WorkerName = *att.WorkerName
		}
		resp.Records = append(resp.Records, rec)
	}

	return resp, nil
}

// TodayStatus implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) TodayStatus(ctx context.Context) ([]attendance.DayStatusEntry, error) {
	today := dateOf(a.now().In(a.loc))

	workers, err := a.WorkerRepository.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}

	records, err := a.AttendanceRepository.ListByDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to list today's attendances: %w", err)
	}

	byWorker := make(map[string]attendance.Attendance, len(records))
	for _, att := range records {
		byWorker[att.WorkerID] = att
	}

	entries := make([]attendance.DayStatusEntry, 0, len(workers))
	for _, w := range workers {
		entry := attendance.DayStatusEntry{
			WorkerID:   w.ID,
			WorkerName: w.Name,
			Role:       string(w.Role),
		}
		if att, ok := byWorker[w.ID]; ok {
			status := att.Status
			entry.Status = &status
			entry.ClockInAt = timePtrToString(att.ClockIn)
			entry.ClockOutAt = timePtrToString(att.ClockOut)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// audit appends an activity entry, logging and continuing on failure.
func (a *AttendanceServiceImpl) audit(ctx context.Context, actorID string, typ activity.Type, description string) {
	entry := activity.Entry{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Type:        typ,
		Description: description,
	}
	if err := a.activityRepo.Append(ctx, entry); err != nil {
		slog.Error("Failed to append activity log entry", "type", typ, "error", err)
	}
}
