package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/leave"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestColumns = `
	lr.id, lr.worker_id, lr.start_date, lr.end_date, lr.leave_type,
	lr.justification, lr.evidence_ref, lr.submitter_role, lr.status,
	lr.submitted_at, lr.updated_at
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.WorkerID, &lr.StartDate, &lr.EndDate, &lr.LeaveType,
		&lr.Justification, &lr.EvidenceRef, &lr.SubmitterRole, &lr.Status,
		&lr.SubmittedAt, &lr.UpdatedAt,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO leave_requests (
			id, worker_id, start_date, end_date, leave_type,
			justification, evidence_ref, submitter_role, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING submitted_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.ID,
		request.WorkerID,
		request.StartDate,
		request.EndDate,
		request.LeaveType,
		request.Justification,
		request.EvidenceRef,
		request.SubmitterRole,
		request.Status,
	).Scan(&request.SubmittedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM leave_requests lr
		JOIN workers w ON w.id = lr.worker_id
		WHERE lr.id = $1
	`, leaveRequestColumns)

	var lr leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&lr.ID, &lr.WorkerID, &lr.StartDate, &lr.EndDate, &lr.LeaveType,
		&lr.Justification, &lr.EvidenceRef, &lr.SubmitterRole, &lr.Status,
		&lr.SubmittedAt, &lr.UpdatedAt,
		&lr.WorkerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return lr, nil
}

// UpdateStatus implements leave.LeaveRequestRepository. The expected
// status in the WHERE clause is the single-writer guard for racing
// approvers.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id string, expected, next leave.Status) (bool, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		UPDATE leave_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		  AND status = $3
	`

	tag, err := q.Exec(ctx, query, next, id, expected)
	if err != nil {
		return false, fmt.Errorf("failed to update leave request status: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListByStatuses implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByStatuses(ctx context.Context, statuses []leave.Status) ([]leave.LeaveRequest, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM leave_requests lr
		JOIN workers w ON w.id = lr.worker_id
		WHERE lr.status = ANY($1)
		ORDER BY lr.submitted_at ASC
	`, leaveRequestColumns)

	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	rows, err := q.Query(ctx, query, values)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by status: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListByWorker implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByWorker(ctx context.Context, workerID string) ([]leave.LeaveRequest, error) {
	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s, w.name
		FROM leave_requests lr
		JOIN workers w ON w.id = lr.worker_id
		WHERE lr.worker_id = $1
		ORDER BY lr.submitted_at DESC
	`, leaveRequestColumns)

	rows, err := q.Query(ctx, query, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by worker: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		var lr leave.LeaveRequest
		err := rows.Scan(
			&lr.ID, &lr.WorkerID, &lr.StartDate, &lr.EndDate, &lr.LeaveType,
			&lr.Justification, &lr.EvidenceRef, &lr.SubmitterRole, &lr.Status,
			&lr.SubmittedAt, &lr.UpdatedAt,
			&lr.WorkerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request row: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}
