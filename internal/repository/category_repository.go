package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// CategoryRepository provides data access methods for the categories table.
// Categories with a NULL user_id are global defaults visible to every user.
type CategoryRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewCategoryRepository creates a new CategoryRepository with the provided database connection.
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// WithTx returns a new CategoryRepository scoped to the provided transaction.
func (r *CategoryRepository) WithTx(tx *sql.Tx) *CategoryRepository {
	return &CategoryRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *CategoryRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func scanCategory(row rowScanner) (model.Category, error) {
	var c model.Category
	var userID sql.NullString

	if err := row.Scan(&c.ID, &userID, &c.Name, &c.Type, &c.Icon, &c.Color, &c.IsDefault); err != nil {
		return model.Category{}, err
	}
	c.UserID = userID.String

	return c, nil
}

// ListForUser returns the user's own categories together with the global defaults,
// income first, defaults before custom ones, then by name.
func (r *CategoryRepository) ListForUser(ctx context.Context, userID string) ([]model.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, color, is_default
		FROM categories
		WHERE user_id IS NULL OR user_id = ?
		ORDER BY type DESC, is_default DESC, name ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories table: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan categories table results: %w", err)
		}
		categories = append(categories, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories table: %w", err)
	}

	return categories, nil
}

// GetCategory retrieves a category by ID regardless of owner.
// Returns ErrCategoryNotFound if no category with the given ID exists.
func (r *CategoryRepository) GetCategory(ctx context.Context, categoryID string) (model.Category, error) {
	query := `
		SELECT id, user_id, name, type, icon, color, is_default
		FROM categories
		WHERE id = ?
	`

	c, err := scanCategory(r.getQuerier().QueryRowContext(ctx, query, categoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to query category: %w", err)
	}

	return c, nil
}

// InsertCategory stores a new category. An empty UserID stores a global one.
func (r *CategoryRepository) InsertCategory(ctx context.Context, c *model.Category) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_default)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		c.ID,
		nullableString(c.UserID),
		c.Name,
		c.Type,
		c.Icon,
		c.Color,
		c.IsDefault,
	)
	if err != nil {
		if isUniqueViolation(err, "categories.name") {
			return apperrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// EnsureGlobalCategory inserts a global category unless one with the same name
// and type already exists. Reports whether a row was inserted.
func (r *CategoryRepository) EnsureGlobalCategory(ctx context.Context, c model.Category) (bool, error) {
	query := `
		INSERT INTO categories (id, user_id, name, type, icon, color, is_default)
		SELECT ?, NULL, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM categories WHERE user_id IS NULL AND name = ? AND type = ?
		)
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		uuid.New().String(), c.Name, c.Type, c.Icon, c.Color, c.IsDefault,
		c.Name, c.Type,
	)
	if err != nil {
		return false, fmt.Errorf("failed to ensure category %s: %w", c.Name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n > 0, nil
}
