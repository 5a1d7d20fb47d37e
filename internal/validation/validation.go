package validation

import (
	"errors"
	"fmt"
	"time"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidUUID, id)
	}
	return nil
}

// ParseDate parses a calendar date in "2006-01-02" format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(model.DateLayout, s)
}

// transactionType accepts only income and expense.
var transactionType = ozzo.By(func(value interface{}) error {
	v, _ := ozzo.Indirect(value)
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if !model.ValidTransactionTypes[model.TransactionType(s)] {
		return errors.New("must be income or expense")
	}
	return nil
})

// isoDate accepts only YYYY-MM-DD strings.
var isoDate = ozzo.Date(model.DateLayout).Error("must be a date in YYYY-MM-DD format")
