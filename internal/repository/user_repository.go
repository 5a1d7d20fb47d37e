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

// UserRepository provides data access methods for the users table.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a new UserRepository scoped to the provided transaction.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *UserRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const userColumns = `
	id, username, email, password_hash, created_at, total_carbon_footprint,
	streak_days, last_activity_date, currency_code, month_start_day
`

func scanUser(row rowScanner) (model.User, error) {
	var u model.User
	var createdAtStr string
	var lastActivity sql.NullString

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&createdAtStr,
		&u.TotalCarbonFootprint,
		&u.StreakDays,
		&lastActivity,
		&u.CurrencyCode,
		&u.MonthStartDay,
	)
	if err != nil {
		return model.User{}, err
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, err
	}

	if lastActivity.Valid {
		d, err := ParseTime(lastActivity.String)
		if err != nil {
			return model.User{}, err
		}
		u.LastActivityDate = &d
	}

	return u, nil
}

// InsertUser stores a new user. ID and CreatedAt are filled in when empty.
// Returns ErrUsernameTaken or ErrEmailTaken on a uniqueness clash.
func (r *UserRepository) InsertUser(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO users (id, username, email, password_hash, created_at, total_carbon_footprint,
			streak_days, last_activity_date, currency_code, month_start_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var lastActivity any
	if u.LastActivityDate != nil {
		lastActivity = formatDate(*u.LastActivityDate)
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		formatTimestamp(u.CreatedAt),
		u.TotalCarbonFootprint,
		u.StreakDays,
		lastActivity,
		u.CurrencyCode,
		u.MonthStartDay,
	)
	if err != nil {
		return mapUserConstraint(err, "failed to insert user")
	}

	return nil
}

// GetUser retrieves a user by ID.
// Returns ErrUserNotFound if no user with the given ID exists.
func (r *UserRepository) GetUser(ctx context.Context, userID string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`

	u, err := scanUser(r.getQuerier().QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// GetUserByUsername retrieves a user by username.
// Returns ErrUserNotFound if no user with the given username exists.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`

	u, err := scanUser(r.getQuerier().QueryRowContext(ctx, query, username))
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

// ListUsers returns every user ordered by username.
func (r *UserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY username ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan users table results: %w", err)
		}
		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users table: %w", err)
	}

	return users, nil
}

// UpdateProfile persists username, email, currency and month start day.
func (r *UserRepository) UpdateProfile(ctx context.Context, u model.User) error {
	query := `
		UPDATE users
		SET username = ?, email = ?, currency_code = ?, month_start_day = ?
		WHERE id = ?
	`

	err := execAffected(ctx, r.getQuerier(), apperrors.ErrUserNotFound, query,
		u.Username, u.Email, u.CurrencyCode, u.MonthStartDay, u.ID,
	)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return mapUserConstraint(err, "failed to update user")
	}
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID, hash string) error {
	query := `UPDATE users SET password_hash = ? WHERE id = ?`

	if err := execAffected(ctx, r.getQuerier(), apperrors.ErrUserNotFound, query, hash, userID); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// UpdateCarbonState persists the footprint total and streak fields.
func (r *UserRepository) UpdateCarbonState(ctx context.Context, u model.User) error {
	query := `
		UPDATE users
		SET total_carbon_footprint = ?, streak_days = ?, last_activity_date = ?
		WHERE id = ?
	`

	var lastActivity any
	if u.LastActivityDate != nil {
		lastActivity = formatDate(*u.LastActivityDate)
	}

	err := execAffected(ctx, r.getQuerier(), apperrors.ErrUserNotFound, query,
		u.TotalCarbonFootprint, u.StreakDays, lastActivity, u.ID,
	)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to update carbon state: %w", err)
	}
	return err
}

// ExpireStreaks resets the streak of every user whose last activity is before
// cutoff (or who never logged one). Returns the number of users reset.
func (r *UserRepository) ExpireStreaks(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE users
		SET streak_days = 0
		WHERE streak_days > 0
		AND (last_activity_date IS NULL OR last_activity_date < ?)
	`

	result, err := r.getQuerier().ExecContext(ctx, query, formatDate(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to expire streaks: %w", err)
	}
	return result.RowsAffected()
}

// Leaderboard returns the users with the lowest total footprint.
func (r *UserRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `
		SELECT username, total_carbon_footprint, streak_days
		FROM users
		ORDER BY total_carbon_footprint ASC, username ASC
		LIMIT ?
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.TotalFootprint, &e.StreakDays); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard results: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leaderboard: %w", err)
	}

	return entries, nil
}

func mapUserConstraint(err error, msg string) error {
	switch {
	case isUniqueViolation(err, "users.username"):
		return apperrors.ErrUsernameTaken
	case isUniqueViolation(err, "users.email"):
		return apperrors.ErrEmailTaken
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
