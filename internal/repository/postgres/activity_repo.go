package postgres

import (
	"context"
	"fmt"

	"fleetflow-service/internal/domain/fleet"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityRepository persists the recent-activity audit feed.
type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Append records one feed entry.
func (r *ActivityRepository) Append(ctx context.Context, a *fleet.Activity) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO recent_activity (id, type, message, time, color)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING`,
		a.ID, a.Type, a.Message, a.Time, a.Color)
	if err != nil {
		return fmt.Errorf("failed to append activity %s: %w", a.ID, err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]fleet.Activity, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, type, message, time, color
		FROM recent_activity ORDER BY pos DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}
	defer rows.Close()

	out := []fleet.Activity{}
	for rows.Next() {
		var a fleet.Activity
		if err := rows.Scan(&a.ID, &a.Type, &a.Message, &a.Time, &a.Color); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
