package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// ActivityRepository provides data access methods for the activities table.
type ActivityRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewActivityRepository creates a new ActivityRepository with the provided database connection.
func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// WithTx returns a new ActivityRepository scoped to the provided transaction.
func (r *ActivityRepository) WithTx(tx *sql.Tx) *ActivityRepository {
	return &ActivityRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *ActivityRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertActivity stores a new activity. ID and CreatedAt are filled in when empty.
func (r *ActivityRepository) InsertActivity(ctx context.Context, a *model.Activity) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO activities (id, user_id, activity_type, category, value, unit,
			carbon_emission, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.ActivityType,
		a.Category,
		a.Value,
		a.Unit,
		a.CarbonEmission,
		formatDate(a.Date),
		a.Description,
		formatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}

	return nil
}

// ListActivities returns the user's most recent activities, newest first.
func (r *ActivityRepository) ListActivities(ctx context.Context, userID string, limit int) ([]model.Activity, error) {
	query := `
		SELECT id, user_id, activity_type, category, value, unit, carbon_emission,
			date, description, created_at
		FROM activities
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
		LIMIT ?
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activities table: %w", err)
	}
	defer rows.Close()

	activities := []model.Activity{}
	for rows.Next() {
		var a model.Activity
		var dateStr, createdAtStr string

		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.ActivityType,
			&a.Category,
			&a.Value,
			&a.Unit,
			&a.CarbonEmission,
			&dateStr,
			&a.Description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activities table results: %w", err)
		}

		if a.Date, err = ParseTime(dateStr); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, err
		}

		activities = append(activities, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activities table: %w", err)
	}

	return activities, nil
}

// CountActivities returns how many activities the user has logged.
func (r *ActivityRepository) CountActivities(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.getQuerier().QueryRowContext(ctx, `SELECT COUNT(*) FROM activities WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count activities: %w", err)
	}
	return n, nil
}
