package service

import (
	"context"
	"strings"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// TipService serves emission reduction tips.
type TipService struct {
	tipRepo *repository.TipRepository
}

// NewTipService creates a new TipService.
func NewTipService(tipRepo *repository.TipRepository) *TipService {
	return &TipService{
		tipRepo: tipRepo,
	}
}

// ListTips returns tips ordered by impact, optionally narrowed to one category.
func (s *TipService) ListTips(ctx context.Context, category string) ([]model.Tip, error) {
	return s.tipRepo.ListTips(ctx, strings.ToLower(strings.TrimSpace(category)))
}
