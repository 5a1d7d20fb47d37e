package request

import "github.com/shopspring/decimal"

// CreateTransactionRequest is the request body for recording a transaction.
// Type and amount are required; date defaults to today and category is optional.
// Amount accepts either a JSON number or a numeric string.
type CreateTransactionRequest struct {
	Type        string           `json:"type"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  string           `json:"category_id"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
}

// UpdateTransactionRequest is the request body for editing a transaction.
// Only provided fields are changed; an empty category_id clears the category.
type UpdateTransactionRequest struct {
	Type        *string          `json:"type,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	CategoryID  *string          `json:"category_id,omitempty"`
	Date        *string          `json:"date,omitempty"`
	Description *string          `json:"description,omitempty"`
}
