package validation

import (
	"errors"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
)

// nonNegativeAmount rejects negative amounts. The sign of a transaction comes
// from its type.
var nonNegativeAmount = ozzo.By(func(value interface{}) error {
	d, ok := value.(*decimal.Decimal)
	if !ok || d == nil {
		return nil
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}
	return nil
})

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - type: income or expense
//   - amount: a non-negative number
//
// Optional fields (validated if provided):
//   - date: YYYY-MM-DD
//   - category_id: a UUID
//   - description: at most 500 characters
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Type, ozzo.Required, transactionType),
		ozzo.Field(&req.Amount, ozzo.NotNil, nonNegativeAmount),
		ozzo.Field(&req.Date, isoDate),
		ozzo.Field(&req.CategoryID, is.UUID),
		ozzo.Field(&req.Description, ozzo.Length(0, 500)),
	))
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	return fromOzzo(ozzo.ValidateStruct(&req,
		ozzo.Field(&req.Type, ozzo.NilOrNotEmpty, transactionType),
		ozzo.Field(&req.Amount, nonNegativeAmount),
		ozzo.Field(&req.Date, ozzo.NilOrNotEmpty, isoDate),
		ozzo.Field(&req.CategoryID, is.UUID),
		ozzo.Field(&req.Description, ozzo.Length(0, 500)),
	))
}
