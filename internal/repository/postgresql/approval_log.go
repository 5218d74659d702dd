package postgresql

import (
	"context"
	"fmt"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/leave"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
)

type approvalLogRepository struct {
	db *database.DB
}

func NewApprovalLogRepository(db *database.DB) leave.ApprovalLogRepository {
	return &approvalLogRepository{db: db}
}

// Append implements leave.ApprovalLogRepository.
func (r *approvalLogRepository) Append(ctx context.Context, entry leave.ApprovalLogEntry) (leave.ApprovalLogEntry, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO leave_approval_log (id, leave_request_id, approver_id, decision, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING decided_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.LeaveRequestID,
		entry.ApproverID,
		entry.Decision,
		entry.Note,
	).Scan(&entry.DecidedAt)

	if err != nil {
		return leave.ApprovalLogEntry{}, fmt.Errorf("failed to append approval log entry: %w", err)
	}

	return entry, nil
}

// ListByRequest implements leave.ApprovalLogRepository.
func (r *approvalLogRepository) ListByRequest(ctx context.Context, leaveRequestID string) ([]leave.ApprovalLogEntry, error) {
	q := r.db.GetQuerier(ctx)

	query := `
		SELECT al.id, al.leave_request_id, al.approver_id, al.decision, al.note, al.decided_at,
		       u.name
		FROM leave_approval_log al
		LEFT JOIN workers u ON u.id = al.approver_id
		WHERE al.leave_request_id = $1
		ORDER BY al.decided_at ASC
	`

	rows, err := q.Query(ctx, query, leaveRequestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval log entries: %w", err)
	}
	defer rows.Close()

	var entries []leave.ApprovalLogEntry
	for rows.Next() {
		var e leave.ApprovalLogEntry
		err := rows.Scan(
			&e.ID, &e.LeaveRequestID, &e.ApproverID, &e.Decision, &e.Note, &e.DecidedAt,
			&e.ApproverName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval log row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
