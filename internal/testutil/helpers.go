package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/logging"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
	"github.com/ecotracker/ecotracker-backend/internal/service"
)

// TestCurrency is the default currency given to new accounts in tests.
const TestCurrency = "INR"

// NewTestSessionManager returns a SessionManager with a fresh random key.
func NewTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()

	key, err := auth.GenerateKey()
	if err != nil {
		t.Fatalf("Failed to generate session key: %v", err)
	}
	sessions, err := auth.NewSessionManager(key, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create session manager: %v", err)
	}
	return sessions
}

func NewTestAuthService(t *testing.T, db *sql.DB, sessions *auth.SessionManager) *service.AuthService {
	t.Helper()

	return service.NewAuthService(repository.NewUserRepository(db), sessions, TestCurrency)
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	return service.NewSettingsService(repository.NewUserRepository(db), TestCurrency)
}

func NewTestCategoryService(t *testing.T, db *sql.DB) *service.CategoryService {
	t.Helper()

	return service.NewCategoryService(repository.NewCategoryRepository(db))
}

// NewTestTransactionService builds a TransactionService. strict enables
// category/transaction type coupling.
func NewTestTransactionService(t *testing.T, db *sql.DB, strict bool) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		repository.NewTransactionRepository(db),
		repository.NewCategoryRepository(db),
		nil,
		strict,
	)
}

func NewTestDashboardService(t *testing.T, db *sql.DB) *service.DashboardService {
	t.Helper()

	return service.NewDashboardService(
		repository.NewUserRepository(db),
		repository.NewTransactionRepository(db),
	)
}

func NewTestExportService(t *testing.T, db *sql.DB) *service.ExportService {
	t.Helper()

	return service.NewExportService(
		repository.NewUserRepository(db),
		repository.NewTransactionRepository(db),
		TestCurrency,
	)
}

func NewTestBadgeService(t *testing.T, db *sql.DB) *service.BadgeService {
	t.Helper()

	return service.NewBadgeService(
		repository.NewBadgeRepository(db),
		repository.NewActivityRepository(db),
		repository.NewUserRepository(db),
		nil,
	)
}

func NewTestActivityService(t *testing.T, db *sql.DB) *service.ActivityService {
	t.Helper()

	return service.NewActivityService(
		db,
		repository.NewActivityRepository(db),
		repository.NewUserRepository(db),
		NewTestBadgeService(t, db),
		nil,
	)
}

func NewTestCarbonService(t *testing.T, db *sql.DB) *service.CarbonService {
	t.Helper()

	return service.NewCarbonService(repository.NewUserRepository(db))
}

func NewTestTipService(t *testing.T, db *sql.DB) *service.TipService {
	t.Helper()

	return service.NewTipService(repository.NewTipRepository(db))
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, logging.Nop())
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeUsername generates a unique username for testing.
//
// Example usage:
//
//	name := testutil.MakeUsername("alice")
//	// Returns: "alice_abc123"
func MakeUsername(base string) string {
	if base == "" {
		base = "user"
	}
	return base + "_" + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random lowercase alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyz0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
