package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// exportHeader is the first row of every export.
var exportHeader = []string{"id", "date", "type", "amount", "currency", "category", "description"}

// ExportService writes a user's transactions as CSV.
type ExportService struct {
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
	defaultCurrency string
}

// NewExportService creates a new ExportService.
func NewExportService(
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
	defaultCurrency string,
) *ExportService {
	return &ExportService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		defaultCurrency: defaultCurrency,
	}
}

// ExportCSV writes the user's transactions between start and end (inclusive,
// nil means open) to w, oldest first. Amounts carry two decimals and line breaks
// in descriptions are flattened to spaces so every record is one line.
func (s *ExportService) ExportCSV(ctx context.Context, userID string, start, end *time.Time, w io.Writer) error {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	currency := user.CurrencyCode
	if currency == "" {
		currency = s.defaultCurrency
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, model.TransactionFilter{
		StartDate: start,
		EndDate:   end,
		Ascending: true,
	})
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, t := range txns {
		record := []string{
			t.ID,
			t.Date.Format(model.DateLayout),
			string(t.Type),
			t.Amount.StringFixed(2),
			currency,
			t.CategoryName,
			flattenLines(t.Description),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func flattenLines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.TrimSpace(s)
}
