package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// TipRepository provides data access methods for the tips table.
type TipRepository struct {
	db *sql.DB
}

// NewTipRepository creates a new TipRepository with the provided database connection.
func NewTipRepository(db *sql.DB) *TipRepository {
	return &TipRepository{db: db}
}

// ListTips returns tips ordered by impact score, highest first. An empty category
// returns every tip.
func (r *TipRepository) ListTips(ctx context.Context, category string) ([]model.Tip, error) {
	query := `
		SELECT id, title, content, category, impact_score
		FROM tips
	`
	var args []any

	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY impact_score DESC, title ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tips table: %w", err)
	}
	defer rows.Close()

	tips := []model.Tip{}
	for rows.Next() {
		var t model.Tip
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.Category, &t.ImpactScore); err != nil {
			return nil, fmt.Errorf("failed to scan tips table results: %w", err)
		}
		tips = append(tips, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tips table: %w", err)
	}

	return tips, nil
}

// EnsureTip inserts a tip unless one with the same title exists.
// Reports whether a row was inserted.
func (r *TipRepository) EnsureTip(ctx context.Context, t model.Tip) (bool, error) {
	query := `
		INSERT INTO tips (id, title, content, category, impact_score)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (title) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query, uuid.New().String(), t.Title, t.Content, t.Category, t.ImpactScore)
	if err != nil {
		return false, fmt.Errorf("failed to ensure tip %s: %w", t.Title, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
