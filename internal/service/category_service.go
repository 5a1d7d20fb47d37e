package service

import (
	"context"
	"strings"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// CategoryService handles category listing and creation.
type CategoryService struct {
	categoryRepo *repository.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// ListCategories returns the categories visible to the user: its own plus the global defaults.
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categoryRepo.ListForUser(ctx, userID)
}

// CreateCategory stores a custom category owned by the user.
// A blank name or unknown type returns ErrInvalidCategory.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req request.CreateCategoryRequest) (model.Category, error) {
	category := model.Category{
		UserID: userID,
		Name:   strings.TrimSpace(req.Name),
		Type:   model.TransactionType(req.Type),
	}

	if category.Name == "" || !model.ValidTransactionTypes[category.Type] {
		return model.Category{}, apperrors.ErrInvalidCategory
	}

	if err := s.categoryRepo.InsertCategory(ctx, &category); err != nil {
		return model.Category{}, err
	}

	return category, nil
}
