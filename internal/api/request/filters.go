package request

import (
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/model"
)

// DefaultTransactionLimit caps transaction listings.
const DefaultTransactionLimit = 100

// ParseTransactionFilter builds a listing filter from query parameters.
//
// Every parameter is optional and lenient: malformed dates and unknown types are
// ignored rather than rejected, so a bad filter widens the result instead of failing.
func ParseTransactionFilter(startParam, endParam, typeParam string) model.TransactionFilter {
	filter := model.TransactionFilter{Limit: DefaultTransactionLimit}

	if t := model.TransactionType(typeParam); model.ValidTransactionTypes[t] {
		filter.Type = t
	}
	filter.StartDate = parseOptionalDate(startParam)
	filter.EndDate = parseOptionalDate(endParam)

	return filter
}

// ParseDateRange parses the optional start/end parameters of an export.
// Malformed values are ignored.
func ParseDateRange(startParam, endParam string) (start, end *time.Time) {
	return parseOptionalDate(startParam), parseOptionalDate(endParam)
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return nil
	}
	return &d
}
