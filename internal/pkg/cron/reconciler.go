package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
)

// ReconcilerJob back-fills absent records for active workers who ended
// the day with no attendance record at all. It runs after the work
// window has closed, so no legitimate clock-in can follow it for the
// same date.
type ReconcilerJob struct {
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	recorder       *RunRecorder
	loc            *time.Location
	runHour        int
	anchorHour     int
	anchorMinute   int
}

func NewReconcilerJob(
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	recorder *RunRecorder,
	loc *time.Location,
	runHour int,
	anchor string,
) (*ReconcilerJob, error) {
	t, err := time.Parse("15:04", anchor)
	if err != nil {
		return nil, fmt.Errorf("invalid absent anchor %q: %w", anchor, err)
	}

	return &ReconcilerJob{
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		recorder:       recorder,
		loc:            loc,
		runHour:        runHour,
		anchorHour:     t.Hour(),
		anchorMinute:   t.Minute(),
	}, nil
}

func (j *ReconcilerJob) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_absent_workers", interval, j.MarkAbsentWorkers)
}

// MarkAbsentWorkers is the scheduled entry point. The scheduler ticks
// hourly; the sweep itself only fires during the configured run hour.
func (j *ReconcilerJob) MarkAbsentWorkers(ctx context.Context) error {
	nowLocal := time.Now().In(j.loc)
	if nowLocal.Hour() != j.runHour {
		return nil
	}
	return j.Sweep(ctx, nowLocal)
}

// Sweep runs one reconciliation pass for the day containing nowLocal.
// Each insertion is independent: one failure is logged and the rest of
// the batch continues.
func (j *ReconcilerJob) Sweep(ctx context.Context, nowLocal time.Time) error {
	slog.Info("Cron: Starting mark absent workers job")
	ranAt := time.Now()

	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, j.loc)
	anchor := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), j.anchorHour, j.anchorMinute, 0, 0, j.loc)

	activeIDs, err := j.workerRepo.ListActiveIDs(ctx)
	if err != nil {
		j.recorder.Record(ranAt, false, "failed to load active workers", 0)
		return fmt.Errorf("failed to load active workers: %w", err)
	}

	recordedIDs, err := j.attendanceRepo.WorkerIDsWithRecordOn(ctx, today)
	if err != nil {
		j.recorder.Record(ranAt, false, "failed to load today's records", 0)
		return fmt.Errorf("failed to load today's attendance records: %w", err)
	}

	recorded := make(map[string]struct{}, len(recordedIDs))
	for _, id := range recordedIDs {
		recorded[id] = struct{}{}
	}

	marked := 0
	failed := 0
	for _, id := range activeIDs {
		if _, ok := recorded[id]; ok {
			continue
		}

		inserted, err := j.attendanceRepo.CreateSystemIfAbsent(ctx, id, today, anchor, attendance.StatusAbsent)
		if err != nil {
			failed++
			slog.Error("Cron: Failed to mark worker absent", "worker_id", id, "error", err)
			continue
		}
		if inserted {
			marked++
		}
	}

	message := fmt.Sprintf("marked %d workers absent", marked)
	if failed > 0 {
		message = fmt.Sprintf("marked %d workers absent, %d failed", marked, failed)
	}
	j.recorder.Record(ranAt, failed == 0, message, marked)

	slog.Info("Cron: Marked absent workers", "count", marked, "failed", failed)
	return nil
}
