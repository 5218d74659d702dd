package cron

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWorkerRepo struct {
	activeIDs []string
	err       error
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrWorkerNotFound
}

func (f *fakeWorkerRepo) GetByQRCode(ctx context.Context, qrCode string) (worker.Worker, error) {
	return worker.Worker{}, worker.ErrQRCodeUnknown
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	return f.activeIDs, f.err
}

type fakeAttendanceRepo struct {
	recordedIDs []string
	inserted    map[string]time.Time
	failFor     map[string]bool
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	return attendance.Attendance{}, false, nil
}

func (f *fakeAttendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) CloseOpenSession(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
	return false, nil
}

func (f *fakeAttendanceRepo) OverrideStatus(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error {
	return nil
}

func (f *fakeAttendanceRepo) CreateSystemIfAbsent(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) (bool, error) {
	if f.failFor[workerID] {
		return false, errors.New("insert failed")
	}
	if f.inserted == nil {
		f.inserted = make(map[string]time.Time)
	}
	if status != attendance.StatusAbsent {
		return false, fmt.Errorf("unexpected status %s", status)
	}
	f.inserted[workerID] = anchor
	return true, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) WorkerIDsWithRecordOn(ctx context.Context, workDate time.Time) ([]string, error) {
	return f.recordedIDs, nil
}

func newTestJob(t *testing.T, workerRepo *fakeWorkerRepo, attRepo *fakeAttendanceRepo) (*ReconcilerJob, *RunRecorder) {
	t.Helper()
	recorder := NewRunRecorder()
	job, err := NewReconcilerJob(workerRepo, attRepo, recorder, time.UTC, 23, "23:00")
	require.NoError(t, err)
	return job, recorder
}

func TestNewReconcilerJob_InvalidAnchor(t *testing.T) {
	_, err := NewReconcilerJob(&fakeWorkerRepo{}, &fakeAttendanceRepo{}, NewRunRecorder(), time.UTC, 23, "11pm")
	assert.Error(t, err)
}

func TestSweep_MarksUnrecordedWorkersAbsent(t *testing.T) {
	workerRepo := &fakeWorkerRepo{activeIDs: []string{"w-1", "w-2", "w-3", "w-4", "w-5"}}
	attRepo := &fakeAttendanceRepo{recordedIDs: []string{"w-1", "w-3"}}
	job, recorder := newTestJob(t, workerRepo, attRepo)

	nowLocal := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	err := job.Sweep(context.Background(), nowLocal)
	require.NoError(t, err)

	assert.Len(t, attRepo.inserted, 3)
	assert.Contains(t, attRepo.inserted, "w-2")
	assert.Contains(t, attRepo.inserted, "w-4")
	assert.Contains(t, attRepo.inserted, "w-5")

	wantAnchor := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, wantAnchor, attRepo.inserted["w-2"])

	record := recorder.Snapshot()
	assert.True(t, record.LastSuccess)
	assert.Equal(t, 3, record.MarkedCount)
	assert.Equal(t, 1, record.RunCount)
}

func TestSweep_EveryoneRecorded(t *testing.T) {
	workerRepo := &fakeWorkerRepo{activeIDs: []string{"w-1", "w-2"}}
	attRepo := &fakeAttendanceRepo{recordedIDs: []string{"w-1", "w-2"}}
	job, recorder := newTestJob(t, workerRepo, attRepo)

	err := job.Sweep(context.Background(), time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Empty(t, attRepo.inserted)
	assert.Equal(t, 0, recorder.Snapshot().MarkedCount)
}

func TestSweep_FailedInsertDoesNotAbortBatch(t *testing.T) {
	workerRepo := &fakeWorkerRepo{activeIDs: []string{"w-1", "w-2", "w-3"}}
	attRepo := &fakeAttendanceRepo{
		recordedIDs: []string{},
		failFor:     map[string]bool{"w-2": true},
	}
	job, recorder := newTestJob(t, workerRepo, attRepo)

	err := job.Sweep(context.Background(), time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, attRepo.inserted, 2)
	record := recorder.Snapshot()
	assert.False(t, record.LastSuccess)
	assert.Equal(t, 2, record.MarkedCount)
}

func TestSweep_IsIdempotentAcrossRuns(t *testing.T) {
	workerRepo := &fakeWorkerRepo{activeIDs: []string{"w-1", "w-2"}}
	attRepo := &fakeAttendanceRepo{recordedIDs: []string{"w-1"}}
	job, _ := newTestJob(t, workerRepo, attRepo)

	nowLocal := time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC)
	require.NoError(t, job.Sweep(context.Background(), nowLocal))

	// Second run: the first sweep's row now shows up as recorded.
	attRepo.recordedIDs = []string{"w-1", "w-2"}
	require.NoError(t, job.Sweep(context.Background(), nowLocal))

	assert.Len(t, attRepo.inserted, 1)
}

func TestSweep_LoadFailureIsRecorded(t *testing.T) {
	workerRepo := &fakeWorkerRepo{err: errors.New("roster unavailable")}
	job, recorder := newTestJob(t, workerRepo, &fakeAttendanceRepo{})

	err := job.Sweep(context.Background(), time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC))
	assert.Error(t, err)

	record := recorder.Snapshot()
	assert.False(t, record.LastSuccess)
	assert.Equal(t, 1, record.RunCount)
}

func TestRunRecorder_Snapshot(t *testing.T) {
	recorder := NewRunRecorder()
	assert.Equal(t, 0, recorder.Snapshot().RunCount)

	ranAt := time.Now()
	recorder.Record(ranAt, true, "marked 2 workers absent", 2)

	record := recorder.Snapshot()
	require.NotNil(t, record.LastRunAt)
	assert.True(t, record.LastSuccess)
	assert.Equal(t, "marked 2 workers absent", record.LastMessage)
	assert.Equal(t, 2, record.MarkedCount)
}
