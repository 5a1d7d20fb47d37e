package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// DefaultPassword is the password of every user created by UserBuilder.
const DefaultPassword = "secret123"

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("alice").
//	    WithCurrency("EUR").
//	    WithMonthStartDay(25).
//	    Build(t, db)
type UserBuilder struct {
	ID               string
	Username         string
	Email            string
	Password         string
	CurrencyCode     string
	MonthStartDay    int
	Footprint        float64
	StreakDays       int
	LastActivityDate *time.Time
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	name := MakeUsername("user")
	return &UserBuilder{
		ID:            MakeID(),
		Username:      name,
		Email:         name + "@example.com",
		Password:      DefaultPassword,
		CurrencyCode:  "INR",
		MonthStartDay: 1,
	}
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPassword sets a custom password.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// WithCurrency sets the display currency.
func (b *UserBuilder) WithCurrency(code string) *UserBuilder {
	b.CurrencyCode = code
	return b
}

// WithMonthStartDay sets the first day of the user's custom month.
func (b *UserBuilder) WithMonthStartDay(day int) *UserBuilder {
	b.MonthStartDay = day
	return b
}

// WithFootprint sets the accumulated carbon footprint.
func (b *UserBuilder) WithFootprint(kg float64) *UserBuilder {
	b.Footprint = kg
	return b
}

// WithStreak sets the streak and the date of the last logged activity.
func (b *UserBuilder) WithStreak(days int, lastActivity time.Time) *UserBuilder {
	b.StreakDays = days
	b.LastActivityDate = &lastActivity
	return b
}

// Build inserts the user into the database.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	hash, err := auth.HashPassword(b.Password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	user := model.User{
		ID:                   b.ID,
		Username:             b.Username,
		Email:                b.Email,
		PasswordHash:         hash,
		CurrencyCode:         b.CurrencyCode,
		MonthStartDay:        b.MonthStartDay,
		TotalCarbonFootprint: b.Footprint,
		StreakDays:           b.StreakDays,
		LastActivityDate:     b.LastActivityDate,
	}

	if err := repository.NewUserRepository(db).InsertUser(context.Background(), &user); err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// CategoryBuilder provides a fluent interface for creating test categories.
//
// Example usage:
//
//	food := testutil.NewCategory("Food", model.TypeExpense).Build(t, db)
//	mine := testutil.NewCategory("Hobbies", model.TypeExpense).OwnedBy(user.ID).Build(t, db)
type CategoryBuilder struct {
	ID     string
	UserID string
	Name   string
	Type   model.TransactionType
}

// NewCategory creates a global CategoryBuilder.
func NewCategory(name string, typ model.TransactionType) *CategoryBuilder {
	return &CategoryBuilder{
		ID:   MakeID(),
		Name: name,
		Type: typ,
	}
}

// OwnedBy makes the category private to userID.
func (b *CategoryBuilder) OwnedBy(userID string) *CategoryBuilder {
	b.UserID = userID
	return b
}

// Build inserts the category into the database.
func (b *CategoryBuilder) Build(t *testing.T, db *sql.DB) model.Category {
	t.Helper()

	category := model.Category{
		ID:        b.ID,
		UserID:    b.UserID,
		Name:      b.Name,
		Type:      b.Type,
		IsDefault: b.UserID == "",
	}

	if err := repository.NewCategoryRepository(db).InsertCategory(context.Background(), &category); err != nil {
		t.Fatalf("Failed to create test category: %v", err)
	}

	return category
}

// CreateCategory creates a global category.
func CreateCategory(t *testing.T, db *sql.DB, name string, typ model.TransactionType) model.Category {
	t.Helper()
	return NewCategory(name, typ).Build(t, db)
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(user.ID).
//	    Expense("42.50").
//	    WithCategory(food).
//	    WithDate(testutil.Date("2024-03-05")).
//	    Build(t, db)
type TransactionBuilder struct {
	ID          string
	UserID      string
	Type        model.TransactionType
	Amount      decimal.Decimal
	Category    *model.Category
	Date        time.Time
	Description string
}

// NewTransaction creates an expense of 10.00 dated today.
func NewTransaction(userID string) *TransactionBuilder {
	y, m, d := time.Now().UTC().Date()
	return &TransactionBuilder{
		ID:     MakeID(),
		UserID: userID,
		Type:   model.TypeExpense,
		Amount: decimal.NewFromInt(10),
		Date:   time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
	}
}

// Income makes the transaction an income of amount.
func (b *TransactionBuilder) Income(amount string) *TransactionBuilder {
	b.Type = model.TypeIncome
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// Expense makes the transaction an expense of amount.
func (b *TransactionBuilder) Expense(amount string) *TransactionBuilder {
	b.Type = model.TypeExpense
	b.Amount = decimal.RequireFromString(amount)
	return b
}

// WithCategory attaches the transaction to c.
func (b *TransactionBuilder) WithCategory(c model.Category) *TransactionBuilder {
	b.Category = &c
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(desc string) *TransactionBuilder {
	b.Description = desc
	return b
}

// Build inserts the transaction into the database.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	txn := model.Transaction{
		ID:          b.ID,
		UserID:      b.UserID,
		Type:        b.Type,
		Amount:      b.Amount,
		Date:        b.Date,
		Description: b.Description,
	}
	if b.Category != nil {
		txn.CategoryID = b.Category.ID
		txn.CategoryName = b.Category.Name
	}

	if err := repository.NewTransactionRepository(db).InsertTransaction(context.Background(), &txn); err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return txn
}

// CreateBadge inserts a badge definition and returns it with its generated ID.
func CreateBadge(t *testing.T, db *sql.DB, name, requirementType string, requirementValue int) model.Badge {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewBadgeRepository(db)

	if _, err := repo.EnsureBadge(ctx, model.Badge{
		Name:             name,
		Description:      name + " badge",
		Icon:             "*",
		RequirementType:  requirementType,
		RequirementValue: requirementValue,
	}); err != nil {
		t.Fatalf("Failed to create test badge: %v", err)
	}

	badges, err := repo.ListBadges(ctx)
	if err != nil {
		t.Fatalf("Failed to list badges: %v", err)
	}
	for _, b := range badges {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("Badge %s not found after insert", name)
	return model.Badge{}
}

// CreateTip inserts a tip.
func CreateTip(t *testing.T, db *sql.DB, title, category string, impact float64) {
	t.Helper()

	_, err := repository.NewTipRepository(db).EnsureTip(context.Background(), model.Tip{
		Title:       title,
		Content:     title + " content",
		Category:    category,
		ImpactScore: impact,
	})
	if err != nil {
		t.Fatalf("Failed to create test tip: %v", err)
	}
}

// Date parses a YYYY-MM-DD literal. It panics on malformed input.
func Date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
