package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the cash-flow direction of a transaction or category.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ValidTransactionTypes contains the allowed transaction and category type values.
var ValidTransactionTypes = map[TransactionType]bool{
	TypeIncome:  true,
	TypeExpense: true,
}

// Transaction represents a single income or expense entry owned by one user.
// Amount is always non-negative; the sign of its effect is derived from Type.
type Transaction struct {
	ID           string
	UserID       string
	Type         TransactionType
	Amount       decimal.Decimal
	CategoryID   string // empty when uncategorised
	CategoryName string // resolved through a join, empty when uncategorised
	Date         time.Time
	Description  string
	CreatedAt    time.Time
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    *string         `json:"category"`
	CategoryID  *string         `json:"category_id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

// TransactionFilter narrows a transaction listing. Nil bounds are open.
type TransactionFilter struct {
	Type      TransactionType
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Ascending bool
}

// NewTransactionResponse converts a Transaction into its API shape.
func NewTransactionResponse(t Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Amount:      t.Amount.Round(2).InexactFloat64(),
		Date:        t.Date.Format(DateLayout),
		Description: t.Description,
	}
	if t.CategoryID != "" {
		id, name := t.CategoryID, t.CategoryName
		resp.CategoryID = &id
		resp.Category = &name
	}
	return resp
}
