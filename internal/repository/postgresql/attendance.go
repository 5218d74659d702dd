package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/attendance"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.worker_id, a.work_date, a.clock_in, a.clock_out, a.worked_minutes,
	a.status, a.verification_method, a.location_id, a.evidence_ref,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.WorkerID, &att.WorkDate, &att.ClockIn, &att.ClockOut, &att.WorkedMins,
		&att.Status, &att.Method, &att.LocationID, &att.EvidenceRef,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// CreateIfAbsent implements attendance.AttendanceRepository. The unique
// index on (worker_id, work_date) turns a racing duplicate clock-in
// into a clean no-op instead of a constraint error.
func (a *attendanceRepository) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	q := a.db.GetQuerier(ctx)

	query := `
		INSERT INTO attendances (
			id, worker_id, work_date, clock_in, status, verification_method,
			location_id, evidence_ref
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (worker_id, work_date) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.WorkerID,
		att.WorkDate,
		att.ClockIn,
		att.Status,
		att.Method,
		att.LocationID,
		att.EvidenceRef,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Conflict: a record already exists for this worker/day.
			return attendance.Attendance{}, false, nil
		}
		return attendance.Attendance{}, false, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, true, nil
}

// GetByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, workDate time.Time) (*attendance.Attendance, error) {
	q := a.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s
		FROM attendances a
		WHERE a.worker_id = $1
		  AND a.work_date = $2
		LIMIT 1
	`, attendanceColumns)

	att, err := scanAttendance(q.QueryRow(ctx, query, workerID, workDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by worker and date: %w", err)
	}

	return &att, nil
}

// CloseOpenSession implements attendance.AttendanceRepository. The
// clock_out IS NULL guard makes the close conditional: of two racing
// clock-out attempts only one can match.
func (a *attendanceRepository) CloseOpenSession(ctx context.Context, workerID string, workDate time.Time, clockOut time.Time, workedMins int, status attendance.Status) (bool, error) {
	q := a.db.GetQuerier(ctx)

	query := `
		UPDATE attendances
		SET clock_out = $1, worked_minutes = $2, status = $3, updated_at = NOW()
		WHERE worker_id = $4
		  AND work_date = $5
		  AND clock_in IS NOT NULL
		  AND clock_out IS NULL
	`

	tag, err := q.Exec(ctx, query, clockOut, workedMins, status, workerID, workDate)
	if err != nil {
		return false, fmt.Errorf("failed to close open session: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// OverrideStatus implements attendance.AttendanceRepository.
func (a *attendanceRepository) OverrideStatus(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) error {
	q := a.db.GetQuerier(ctx)

	query := `
		INSERT INTO attendances (id, worker_id, work_date, status, verification_method, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $5)
		ON CONFLICT (worker_id, work_date)
		DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, workerID, workDate, status, attendance.MethodSystem, anchor); err != nil {
		return fmt.Errorf("failed to override attendance status: %w", err)
	}

	return nil
}

// CreateSystemIfAbsent implements attendance.AttendanceRepository.
func (a *attendanceRepository) CreateSystemIfAbsent(ctx context.Context, workerID string, workDate time.Time, anchor time.Time, status attendance.Status) (bool, error) {
	q := a.db.GetQuerier(ctx)

	query := `
		INSERT INTO attendances (id, worker_id, work_date, status, verification_method, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $5)
		ON CONFLICT (worker_id, work_date) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, workerID, workDate, status, attendance.MethodSystem, anchor)
	if err != nil {
		return false, fmt.Errorf("failed to insert system attendance: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := a.db.GetQuerier(ctx)

	conditions := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.WorkerID != nil {
		conditions = append(conditions, "a.worker_id = "+arg(*filter.WorkerID))
	}
	if filter.Date != nil {
		conditions = append(conditions, "a.work_date = "+arg(*filter.Date))
	}
	if filter.StartDate != nil {
		conditions = append(conditions, "a.work_date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "a.work_date <= "+arg(*filter.EndDate))
	}
	if filter.LocationID != nil {
		conditions = append(conditions, "a.location_id = "+arg(*filter.LocationID))
	}
	if filter.Status != nil {
		conditions = append(conditions, "a.status = "+arg(*filter.Status))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM attendances a WHERE " + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM attendances a
		JOIN workers w ON w.id = a.worker_id
		WHERE %s
		ORDER BY a.work_date DESC, a.clock_in DESC NULLS LAST
		LIMIT %s OFFSET %s
	`, attendanceColumns, where, arg(filter.Limit), arg(offset))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.WorkerID, &att.WorkDate, &att.ClockIn, &att.ClockOut, &att.WorkedMins,
			&att.Status, &att.Method, &att.LocationID, &att.EvidenceRef,
			&att.CreatedAt, &att.UpdatedAt,
			&att.WorkerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}

	return records, total, rows.Err()
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, workDate time.Time) ([]attendance.Attendance, error) {
	q := a.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM attendances a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.work_date = $1
		ORDER BY w.name ASC
	`, attendanceColumns)

	rows, err := q.Query(ctx, query, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.WorkerID, &att.WorkDate, &att.ClockIn, &att.ClockOut, &att.WorkedMins,
			&att.Status, &att.Method, &att.LocationID, &att.EvidenceRef,
			&att.CreatedAt, &att.UpdatedAt,
			&att.WorkerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// WorkerIDsWithRecordOn implements attendance.AttendanceRepository.
func (a *attendanceRepository) WorkerIDsWithRecordOn(ctx context.Context, workDate time.Time) ([]string, error) {
	q := a.db.GetQuerier(ctx)

	query := `
		SELECT DISTINCT worker_id
		FROM attendances
		WHERE work_date = $1
	`

	rows, err := q.Query(ctx, query, workDate)
	if err != nil {
		return nil, fmt.Errorf("failed to list recorded worker ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan worker id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
