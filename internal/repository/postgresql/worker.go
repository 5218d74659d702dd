package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/worker"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `
	w.id, w.name, w.role, w.active, w.location_id, w.qr_code, w.created_at, w.updated_at
`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Name, &w.Role, &w.Active, &w.LocationID, &w.QRCode, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`SELECT %s FROM workers w WHERE w.id = $1`, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}

	return w, nil
}

// GetByQRCode implements worker.WorkerRepository.
func (r *workerRepository) GetByQRCode(ctx context.Context, qrCode string) (worker.Worker, error) {
	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`SELECT %s FROM workers w WHERE w.qr_code = $1`, workerColumns)

	w, err := scanWorker(q.QueryRow(ctx, query, qrCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrQRCodeUnknown
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by QR code: %w", err)
	}

	return w, nil
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context) ([]worker.Worker, error) {
	q := r.db.GetQuerier(ctx)

	query := fmt.Sprintf(`
		SELECT %s
		FROM workers w
		WHERE w.active = TRUE
		ORDER BY w.name ASC
	`, workerColumns)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		var w worker.Worker
		err := rows.Scan(
			&w.ID, &w.Name, &w.Role, &w.Active, &w.LocationID, &w.QRCode, &w.CreatedAt, &w.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker row: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, rows.Err()
}

// ListActiveIDs implements worker.WorkerRepository.
func (r *workerRepository) ListActiveIDs(ctx context.Context) ([]string, error) {
	q := r.db.GetQuerier(ctx)

	rows, err := q.Query(ctx, `SELECT id FROM workers WHERE active = TRUE`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active worker ids: %w", err)
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
