package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transactions table.
// Every query is scoped to a single owner.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionSelect = `
	SELECT t.id, t.user_id, t.type, t.amount, t.category_id, c.name, t.date, t.description, t.created_at
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id
`

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var categoryID, categoryName sql.NullString
	var dateStr, createdAtStr string

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Type,
		&t.Amount,
		&categoryID,
		&categoryName,
		&dateStr,
		&t.Description,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	t.CategoryID = categoryID.String
	t.CategoryName = categoryName.String

	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// ListTransactions retrieves the user's transactions matching filter.
//
// Results are ordered newest first unless filter.Ascending is set; same-day
// entries follow creation order. A zero Limit returns every match.
func (r *TransactionRepository) ListTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := transactionSelect + ` WHERE t.user_id = ?`
	args := []any{userID}

	if filter.Type != "" {
		query += ` AND t.type = ?`
		args = append(args, filter.Type)
	}
	if filter.StartDate != nil {
		query += ` AND t.date >= ?`
		args = append(args, formatDate(*filter.StartDate))
	}
	if filter.EndDate != nil {
		query += ` AND t.date <= ?`
		args = append(args, formatDate(*filter.EndDate))
	}

	if filter.Ascending {
		query += ` ORDER BY t.date ASC, t.created_at ASC`
	} else {
		query += ` ORDER BY t.date DESC, t.created_at DESC`
	}

	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transactions table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves one of the user's transactions.
// Returns ErrTransactionNotFound if it does not exist or belongs to someone else.
func (r *TransactionRepository) GetTransaction(ctx context.Context, userID, transactionID string) (model.Transaction, error) {
	query := transactionSelect + ` WHERE t.id = ? AND t.user_id = ?`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, transactionID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}

	return t, nil
}

// InsertTransaction stores a new transaction. ID and CreatedAt are filled in when empty.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t *model.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO transactions (id, user_id, type, amount, category_id, date, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Type,
		t.Amount.String(),
		nullableString(t.CategoryID),
		formatDate(t.Date),
		t.Description,
		formatTimestamp(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction overwrites the mutable fields of one of the user's transactions.
// Returns ErrTransactionNotFound if no owned transaction matches.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	query := `
		UPDATE transactions
		SET type = ?, amount = ?, category_id = ?, date = ?, description = ?
		WHERE id = ? AND user_id = ?
	`

	err := execAffected(ctx, r.getQuerier(), apperrors.ErrTransactionNotFound, query,
		t.Type,
		t.Amount.String(),
		nullableString(t.CategoryID),
		formatDate(t.Date),
		t.Description,
		t.ID,
		t.UserID,
	)
	if err != nil && !errors.Is(err, apperrors.ErrTransactionNotFound) {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return err
}

// DeleteTransaction removes one of the user's transactions.
// Returns ErrTransactionNotFound if no owned transaction matches.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	query := `DELETE FROM transactions WHERE id = ? AND user_id = ?`

	err := execAffected(ctx, r.getQuerier(), apperrors.ErrTransactionNotFound, query, transactionID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrTransactionNotFound) {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return err
}
