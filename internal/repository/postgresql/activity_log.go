package postgresql

import (
	"context"
	"fmt"

	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/domain/activity"
	"github.com/AhmadFauzanZW/sistem-absensi-proyek-sub000/internal/pkg/database"
)

type activityRepository struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.ActivityRepository {
	return &activityRepository{db: db}
}

// Append implements activity.ActivityRepository.
func (r *activityRepository) Append(ctx context.Context, entry activity.Entry) error {
	q := r.db.GetQuerier(ctx)

	query := `
		INSERT INTO activity_log (id, actor_id, activity_type, description)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := q.Exec(ctx, query, entry.ID, entry.ActorID, entry.Type, entry.Description); err != nil {
		return fmt.Errorf("failed to append activity log entry: %w", err)
	}

	return nil
}
