package service

import (
	"context"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

const (
	// LeaderboardSize is the number of users on the leaderboard.
	LeaderboardSize = 10

	// KgPerTree is the CO2 a tree absorbs per year.
	KgPerTree = 22.0

	// KgPerCredit is the CO2 covered by one carbon credit.
	KgPerCredit = 1000.0
)

// CarbonService serves footprint comparisons and offset estimates.
type CarbonService struct {
	userRepo *repository.UserRepository
}

// NewCarbonService creates a new CarbonService.
func NewCarbonService(userRepo *repository.UserRepository) *CarbonService {
	return &CarbonService{
		userRepo: userRepo,
	}
}

// Leaderboard returns the users with the lowest total footprint.
func (s *CarbonService) Leaderboard(ctx context.Context) ([]model.LeaderboardEntry, error) {
	return s.userRepo.Leaderboard(ctx, LeaderboardSize)
}

// OffsetEstimate converts the user's footprint into trees and carbon credits.
func (s *CarbonService) OffsetEstimate(ctx context.Context, userID string) (model.OffsetEstimate, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return model.OffsetEstimate{}, err
	}

	return model.OffsetEstimate{
		TreesNeeded:    round(user.TotalCarbonFootprint / KgPerTree),
		CarbonCredits:  round(user.TotalCarbonFootprint / KgPerCredit),
		TotalFootprint: user.TotalCarbonFootprint,
	}, nil
}
