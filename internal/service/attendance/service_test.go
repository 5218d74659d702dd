package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/activity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	createIfAbsent        func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error)
	getByWorkerAndDate    func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error)
	closeOpenSession      func(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error)
	overrideStatus        func(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error
	createSystemIfAbsent  func(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) (bool, error)
	list                  func(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error)
	listByDate            func(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error)
	workerIDsWithRecordOn func(ctx context.Context, workDate time.Time) ([]string, error)
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	return f.createIfAbsent(ctx, att)
}

func (f *fakeAttendanceRepo) GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
	if f.getByWorkerAndDate == nil {
		return nil, nil
	}
	return f.getByWorkerAndDate(ctx, workerID, workDate)
}

func (f *fakeAttendanceRepo) CloseOpenSession(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
	return f.closeOpenSession(ctx, workerID, workDate, clockOut, workedMins, status)
}

func (f *fakeAttendanceRepo) OverrideStatus(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error {
	return f.overrideStatus(ctx, workerID, workDate, anchor, status)
}

func (f *fakeAttendanceRepo) CreateSystemIfAbsent(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) (bool, error) {
	return f.createSystemIfAbsent(ctx, workerID, workDate, anchor, status)
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	return f.list(ctx, filter)
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	return f.listByDate(ctx, workDate)
}

func (f *fakeAttendanceRepo) WorkerIDsWithRecordOn(ctx context.Context, workDate time.Time) ([]string, error) {
	return f.workerIDsWithRecordOn(ctx, workDate)
}

type fakeWorkerRepo struct {
	getByID     func(ctx context.Context, id string) (worker.Worker, error)
	getByQRCode func(ctx context.Context, qrCode string) (worker.Worker, error)
	listActive  func(ctx context.Context) ([]worker.Worker, error)
}

func (f *fakeWorkerRepo) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	return f.getByID(ctx, id)
}

func (f *fakeWorkerRepo) GetByQRCode(ctx context.Context, qrCode string) (worker.Worker, error) {
	return f.getByQRCode(ctx, qrCode)
}

func (f *fakeWorkerRepo) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return f.listActive(ctx)
}

func (f *fakeWorkerRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	return nil, nil
}

type fakeActivityRepo struct {
	append func(ctx context.Context, entry activity.Entry) error
}

func (f *fakeActivityRepo) Append(ctx context.Context, entry activity.Entry) error {
	if f.append == nil {
		return nil
	}
	return f.append(ctx, entry)
}

type fakeResolver struct {
	resolve func(ctx context.Context, payload string) (string, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, payload string) (string, error) {
	return f.resolve(ctx, payload)
}

func testService(t *testing.T, attRepo *fakeAttendanceRepo, workerRepo *fakeWorkerRepo, now time.Time) *AttendanceServiceImpl {
	t.Helper()

	policy, err := attendance.ParsePolicy(7, 16, "08:05", 480, 540)
	require.NoError(t, err)

	if workerRepo == nil {
		workerRepo = &fakeWorkerRepo{
			getByID: func(ctx context.Context, id string) (worker.Worker, error) {
				return worker.Worker{ID: id, Name: "Budi", Role: worker.RoleWorker, Active: true}, nil
			},
		}
	}

	return &AttendanceServiceImpl{
		AttendanceRepository: attRepo,
		WorkerRepository:     workerRepo,
		activityRepo:         &fakeActivityRepo{},
		policy:               policy,
		loc:                  time.UTC,
		now:                  func() time.Time { return now },
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestRecordEvent_ClockInPresent(t *testing.T) {
	var inserted attendance.Attendance
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			inserted = att
			return att, true, nil
		},
	}
	svc := testService(t, attRepo, nil, at(7, 30))

	resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockIn,
		Method:   attendance.MethodManual,
	})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, string(attendance.ActionClockIn), resp.Action)
	assert.Equal(t, "2025-03-10", resp.WorkDate)
	assert.Equal(t, attendance.StatusPresent, inserted.Status)
	assert.Equal(t, "w-1", inserted.WorkerID)
	require.NotNil(t, inserted.ClockIn)
}

func TestRecordEvent_ClockInLateAfterCutoff(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			return att, true, nil
		},
	}
	svc := testService(t, attRepo, nil, at(8, 6))

	resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockIn,
		Method:   attendance.MethodManual,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
}

func TestRecordEvent_ClockInOutsideWindow(t *testing.T) {
	svc := testService(t, &fakeAttendanceRepo{}, nil, at(6, 30))

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockIn,
		Method:   attendance.MethodManual,
	})
	assert.ErrorIs(t, err, attendance.ErrOutsideWorkWindow)
}

func TestRecordEvent_DuplicateClockIn(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			return attendance.Attendance{}, false, nil
		},
	}
	svc := testService(t, attRepo, nil, at(9, 0))

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockIn,
		Method:   attendance.MethodManual,
	})
	assert.ErrorIs(t, err, attendance.ErrDuplicateClockIn)
}

func TestRecordEvent_ClockOutClassification(t *testing.T) {
	cases := []struct {
		name      string
		clockInAt time.Time
		outAt     time.Time
		inStatus  attendance.Status
		want      attendance.Status
	}{
		{"early leave", at(8, 0), at(14, 0), attendance.StatusPresent, attendance.StatusEarlyLeave},
		{"normal day retains present", at(7, 0), at(15, 30), attendance.StatusPresent, attendance.StatusPresent},
		{"normal day retains late", at(8, 30), at(17, 0), attendance.StatusLate, attendance.StatusLate},
		{"overtime", at(7, 0), at(16, 30), attendance.StatusPresent, attendance.StatusOvertime},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			clockIn := c.clockInAt
			var gotMins int
			var gotStatus attendance.Status
			attRepo := &fakeAttendanceRepo{
				getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
					return &attendance.Attendance{ID: "a-1", WorkerID: workerID, ClockIn: &clockIn, Status: c.inStatus}, nil
				},
				closeOpenSession: func(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
					gotMins = workedMins
					gotStatus = status
					return true, nil
				},
			}
			svc := testService(t, attRepo, nil, c.outAt)

			resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
				WorkerID: "w-1",
				Action:   attendance.ActionClockOut,
				Method:   attendance.MethodManual,
			})
			require.NoError(t, err)

			assert.Equal(t, c.want, resp.Status)
			assert.Equal(t, c.want, gotStatus)
			assert.Equal(t, int(c.outAt.Sub(clockIn).Minutes()), gotMins)
		})
	}
}

func TestRecordEvent_ClockOutWithoutClockIn(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
			return nil, nil
		},
	}
	svc := testService(t, attRepo, nil, at(15, 0))

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockOut,
		Method:   attendance.MethodManual,
	})
	assert.ErrorIs(t, err, attendance.ErrNoOpenClockIn)
}

func TestRecordEvent_ClockOutBlockedByLeaveOrAbsence(t *testing.T) {
	for _, status := range []attendance.Status{attendance.StatusLeave, attendance.StatusAbsent} {
		attRepo := &fakeAttendanceRepo{
			getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
				return &attendance.Attendance{ID: "a-1", WorkerID: workerID, Status: status}, nil
			},
		}
		svc := testService(t, attRepo, nil, at(15, 0))

		_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
			WorkerID: "w-1",
			Action:   attendance.ActionClockOut,
			Method:   attendance.MethodManual,
		})
		assert.ErrorIs(t, err, attendance.ErrBlockedByLeaveOrAbsence, "status %s", status)
	}
}

func TestRecordEvent_ClockOutLostRace(t *testing.T) {
	clockIn := at(8, 0)
	attRepo := &fakeAttendanceRepo{
		getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: "a-1", WorkerID: workerID, ClockIn: &clockIn, Status: attendance.StatusPresent}, nil
		},
		closeOpenSession: func(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
			return false, nil
		},
	}
	svc := testService(t, attRepo, nil, at(16, 0))

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockOut,
		Method:   attendance.MethodManual,
	})
	assert.ErrorIs(t, err, attendance.ErrNoOpenClockIn)
}

func TestRecordEvent_AutoResolution(t *testing.T) {
	clockIn := at(7, 30)
	clockOut := at(16, 0)

	cases := []struct {
		name       string
		existing   *attendance.Attendance
		wantAction string
		wantErr    error
	}{
		{"no record means clock-in", nil, string(attendance.ActionClockIn), nil},
		{"open record means clock-out", &attendance.Attendance{ID: "a-1", ClockIn: &clockIn, Status: attendance.StatusPresent}, string(attendance.ActionClockOut), nil},
		{"completed record is terminal", &attendance.Attendance{ID: "a-1", ClockIn: &clockIn, ClockOut: &clockOut, Status: attendance.StatusPresent}, "", attendance.ErrAlreadyCompletedToday},
		{"leave record blocks", &attendance.Attendance{ID: "a-1", Status: attendance.StatusLeave}, "", attendance.ErrBlockedByLeaveOrAbsence},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attRepo := &fakeAttendanceRepo{
				getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
					if c.existing == nil {
						return nil, nil
					}
					cp := *c.existing
					return &cp, nil
				},
				createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
					return att, true, nil
				},
				closeOpenSession: func(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
					return true, nil
				},
			}
			svc := testService(t, attRepo, nil, at(15, 30))

			resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
				WorkerID: "w-1",
				Action:   attendance.ActionAuto,
				Method:   attendance.MethodManual,
			})
			if c.wantErr != nil {
				assert.ErrorIs(t, err, c.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.wantAction, resp.Action)
		})
	}
}

func TestRecordEvent_ResolvesWorkerByQRCode(t *testing.T) {
	workerRepo := &fakeWorkerRepo{
		getByQRCode: func(ctx context.Context, qrCode string) (worker.Worker, error) {
			if qrCode != "qr-123" {
				return worker.Worker{}, worker.ErrQRCodeUnknown
			}
			return worker.Worker{ID: "w-9", Name: "Siti", Role: worker.RoleWorker, Active: true}, nil
		},
	}
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			return att, true, nil
		},
	}
	svc := testService(t, attRepo, workerRepo, at(7, 45))

	resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		QRCode: "qr-123",
		Action: attendance.ActionClockIn,
		Method: attendance.MethodQR,
	})
	require.NoError(t, err)
	assert.Equal(t, "w-9", resp.WorkerID)

	_, err = svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		QRCode: "qr-unknown",
		Action: attendance.ActionClockIn,
		Method: attendance.MethodQR,
	})
	assert.ErrorIs(t, err, worker.ErrQRCodeUnknown)
}

func TestRecordEvent_ResolvesWorkerByFace(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			return att, true, nil
		},
	}
	svc := testService(t, attRepo, nil, at(7, 45))
	svc.identity = &fakeResolver{
		resolve: func(ctx context.Context, payload string) (string, error) {
			return "w-1", nil
		},
	}

	resp, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		FacePayload: "blob",
		Action:      attendance.ActionClockIn,
		Method:      attendance.MethodFace,
	})
	require.NoError(t, err)
	assert.Equal(t, "w-1", resp.WorkerID)
}

func TestRecordEvent_AuditFailureDoesNotFailEvent(t *testing.T) {
	attRepo := &fakeAttendanceRepo{
		createIfAbsent: func(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
			return att, true, nil
		},
	}
	svc := testService(t, attRepo, nil, at(7, 45))
	svc.activityRepo = &fakeActivityRepo{
		append: func(ctx context.Context, entry activity.Entry) error {
			return errors.New("audit store down")
		},
	}

	_, err := svc.RecordEvent(context.Background(), attendance.RecordEventRequest{
		WorkerID: "w-1",
		Action:   attendance.ActionClockIn,
		Method:   attendance.MethodManual,
	})
	assert.NoError(t, err)
}

func TestInjectLeave_Overrides(t *testing.T) {
	var gotStatus attendance.Status
	var gotDate time.Time
	attRepo := &fakeAttendanceRepo{
		getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
			return nil, nil
		},
		overrideStatus: func(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error {
			gotStatus = status
			gotDate = workDate
			return nil
		},
	}
	svc := testService(t, attRepo, nil, at(10, 0))

	err := svc.InjectLeave(context.Background(), "w-1", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusLeave, gotStatus)
	assert.Equal(t, time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), gotDate)
}

func TestInjectLeave_OverwritesCompletedRecord(t *testing.T) {
	clockIn := at(8, 0)
	clockOut := at(16, 0)
	overridden := false
	attRepo := &fakeAttendanceRepo{
		getByWorkerAndDate: func(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
			return &attendance.Attendance{ID: "a-1", ClockIn: &clockIn, ClockOut: &clockOut, Status: attendance.StatusPresent}, nil
		},
		overrideStatus: func(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error {
			overridden = true
			return nil
		},
	}
	svc := testService(t, attRepo, nil, at(10, 0))

	err := svc.InjectLeave(context.Background(), "w-1", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, overridden)
}

func TestTodayStatus_JoinsRosterWithRecords(t *testing.T) {
	clockIn := at(7, 30)
	workerRepo := &fakeWorkerRepo{
		listActive: func(ctx context.Context) ([]worker.Worker, error) {
			return []worker.Worker{
				{ID: "w-1", Name: "Budi", Role: worker.RoleWorker},
				{ID: "w-2", Name: "Siti", Role: worker.RoleSupervisor},
			}, nil
		},
	}
	attRepo := &fakeAttendanceRepo{
		listByDate: func(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
			return []attendance.Attendance{
				{ID: "a-1", WorkerID: "w-1", ClockIn: &clockIn, Status: attendance.StatusPresent},
			}, nil
		},
	}
	svc := testService(t, attRepo, workerRepo, at(10, 0))

	entries, err := svc.TodayStatus(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	require.NotNil(t, entries[0].Status)
	assert.Equal(t, attendance.StatusPresent, *entries[0].Status)
	assert.NotNil(t, entries[0].ClockInAt)

	assert.Nil(t, entries[1].Status)
	assert.Nil(t, entries[1].ClockInAt)
}
