package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// BadgeRepository provides data access methods for the badges and user_badges tables.
type BadgeRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewBadgeRepository creates a new BadgeRepository with the provided database connection.
func NewBadgeRepository(db *sql.DB) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// WithTx returns a new BadgeRepository scoped to the provided transaction.
func (r *BadgeRepository) WithTx(tx *sql.Tx) *BadgeRepository {
	return &BadgeRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *BadgeRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// ListBadges returns every badge definition ordered by name.
func (r *BadgeRepository) ListBadges(ctx context.Context) ([]model.Badge, error) {
	query := `
		SELECT id, name, description, icon, requirement_type, requirement_value
		FROM badges
		ORDER BY name ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query badges table: %w", err)
	}
	defer rows.Close()

	badges := []model.Badge{}
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Icon, &b.RequirementType, &b.RequirementValue); err != nil {
			return nil, fmt.Errorf("failed to scan badges table results: %w", err)
		}
		badges = append(badges, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating badges table: %w", err)
	}

	return badges, nil
}

// EnsureBadge inserts a badge definition unless one with the same name exists.
// Reports whether a row was inserted.
func (r *BadgeRepository) EnsureBadge(ctx context.Context, b model.Badge) (bool, error) {
	query := `
		INSERT INTO badges (id, name, description, icon, requirement_type, requirement_value)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		uuid.New().String(), b.Name, b.Description, b.Icon, b.RequirementType, b.RequirementValue,
	)
	if err != nil {
		return false, fmt.Errorf("failed to ensure badge %s: %w", b.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}

// ListEarned returns the badges the user has earned, oldest first.
func (r *BadgeRepository) ListEarned(ctx context.Context, userID string) ([]model.EarnedBadge, error) {
	query := `
		SELECT b.id, b.name, b.description, b.icon, b.requirement_type, b.requirement_value, ub.earned_at
		FROM user_badges ub
		JOIN badges b ON ub.badge_id = b.id
		WHERE ub.user_id = ?
		ORDER BY ub.earned_at ASC, b.name ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user_badges table: %w", err)
	}
	defer rows.Close()

	earned := []model.EarnedBadge{}
	for rows.Next() {
		var e model.EarnedBadge
		var earnedAtStr string

		err := rows.Scan(
			&e.ID,
			&e.Name,
			&e.Description,
			&e.Icon,
			&e.RequirementType,
			&e.RequirementValue,
			&earnedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user_badges table results: %w", err)
		}
		if e.EarnedAt, err = ParseTime(earnedAtStr); err != nil {
			return nil, err
		}
		earned = append(earned, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user_badges table: %w", err)
	}

	return earned, nil
}

// AwardBadge records that the user earned the badge. Awarding an already earned
// badge is a no-op; the result reports whether a new row was written.
func (r *BadgeRepository) AwardBadge(ctx context.Context, userID, badgeID string, at time.Time) (bool, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id, earned_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id, badge_id) DO NOTHING
	`

	result, err := r.getQuerier().ExecContext(ctx, query, userID, badgeID, formatTimestamp(at))
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
