package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
	"github.com/ecotracker/ecotracker-backend/internal/validation"
)

// TransactionService handles transaction business logic: category access checks,
// date defaults and owner scoping.
type TransactionService struct {
	transactionRepo     *repository.TransactionRepository
	categoryRepo        *repository.CategoryRepository
	metrics             *metrics.Metrics
	strictCategoryTypes bool
	now                 func() time.Time
}

// NewTransactionService creates a new TransactionService with the provided repository dependencies.
// When strictCategoryTypes is set, a transaction's category must have the same type as the transaction.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	categoryRepo *repository.CategoryRepository,
	m *metrics.Metrics,
	strictCategoryTypes bool,
) *TransactionService {
	return &TransactionService{
		transactionRepo:     transactionRepo,
		categoryRepo:        categoryRepo,
		metrics:             m,
		strictCategoryTypes: strictCategoryTypes,
		now:                 time.Now,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	c := *s
	c.now = now
	return &c
}

// ListTransactions returns the user's transactions matching filter, newest first.
func (s *TransactionService) ListTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	return s.transactionRepo.ListTransactions(ctx, userID, filter)
}

// GetTransaction retrieves one of the user's transactions.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (model.Transaction, error) {
	return s.transactionRepo.GetTransaction(ctx, userID, transactionID)
}

// CreateTransaction records a validated transaction for the user.
// The date defaults to today (UTC). A category that does not exist, belongs to
// another user or, in strict mode, has the other type returns ErrInvalidCategory.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, req request.CreateTransactionRequest) (model.Transaction, error) {
	transaction := model.Transaction{
		UserID:      userID,
		Type:        model.TransactionType(req.Type),
		Amount:      *req.Amount,
		Date:        utcToday(s.now()),
		Description: strings.TrimSpace(req.Description),
	}

	if req.Date != "" {
		date, err := validation.ParseDate(req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = date
	}

	if req.CategoryID != "" {
		category, err := s.resolveCategory(ctx, userID, req.CategoryID, transaction.Type)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.CategoryID = category.ID
		transaction.CategoryName = category.Name
	}

	if err := s.transactionRepo.InsertTransaction(ctx, &transaction); err != nil {
		return model.Transaction{}, err
	}

	s.metrics.TransactionRecorded(string(transaction.Type))

	return transaction, nil
}

// UpdateTransaction applies the provided fields of a validated update request
// to one of the user's transactions. An empty category_id clears the category.
func (s *TransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req request.UpdateTransactionRequest) (model.Transaction, error) {
	transaction, err := s.transactionRepo.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return model.Transaction{}, err
	}

	if req.Type != nil {
		transaction.Type = model.TransactionType(*req.Type)
	}
	if req.Amount != nil {
		transaction.Amount = *req.Amount
	}
	if req.Date != nil {
		date, err := validation.ParseDate(*req.Date)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.Date = date
	}
	if req.Description != nil {
		transaction.Description = strings.TrimSpace(*req.Description)
	}

	categoryID := transaction.CategoryID
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	transaction.CategoryID, transaction.CategoryName = "", ""
	if categoryID != "" {
		category, err := s.resolveCategory(ctx, userID, categoryID, transaction.Type)
		if err != nil {
			return model.Transaction{}, err
		}
		transaction.CategoryID = category.ID
		transaction.CategoryName = category.Name
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, transaction); err != nil {
		return model.Transaction{}, err
	}

	return transaction, nil
}

// DeleteTransaction removes one of the user's transactions.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, userID, transactionID)
}

func (s *TransactionService) resolveCategory(ctx context.Context, userID, categoryID string, txType model.TransactionType) (model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, categoryID)
	if errors.Is(err, apperrors.ErrCategoryNotFound) {
		return model.Category{}, apperrors.ErrInvalidCategory
	}
	if err != nil {
		return model.Category{}, err
	}

	if !category.AccessibleBy(userID) {
		return model.Category{}, apperrors.ErrInvalidCategory
	}
	if s.strictCategoryTypes && category.Type != txType {
		return model.Category{}, apperrors.ErrInvalidCategory
	}

	return category, nil
}
