package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// DashboardService builds the dashboard figures and insights for a user.
// Every call works on a fresh snapshot; nothing derived is stored.
type DashboardService struct {
	userRepo        *repository.UserRepository
	transactionRepo *repository.TransactionRepository
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	userRepo *repository.UserRepository,
	transactionRepo *repository.TransactionRepository,
) *DashboardService {
	return &DashboardService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	c := *s
	c.now = now
	return &c
}

// snapshot is everything the period aggregator needs for one user.
type snapshot struct {
	user         model.User
	transactions []model.Transaction
}

// loadSnapshot reads the user and all of its transactions concurrently.
func (s *DashboardService) loadSnapshot(ctx context.Context, userID string) (snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		user, err := s.userRepo.GetUser(gctx, userID)
		if err != nil {
			return err
		}
		snap.user = user
		return nil
	})

	g.Go(func() error {
		txns, err := s.transactionRepo.ListTransactions(gctx, userID, model.TransactionFilter{Ascending: true})
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		snap.transactions = txns
		return nil
	})

	if err := g.Wait(); err != nil {
		return snapshot{}, err
	}

	return snap, nil
}

// GetDashboard returns the current custom month window, the daily expense series,
// the expense breakdown and the KPIs in the user's currency.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string) (model.DashboardResponse, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return model.DashboardResponse{}, err
	}

	dashboard := period.BuildDashboard(snap.transactions, s.now(), snap.user.MonthStartDay)
	return dashboard.Response(snap.user.CurrencyCode), nil
}

// GetRecommendations returns up to three ranked month-over-month insights.
func (s *DashboardService) GetRecommendations(ctx context.Context, userID string) ([]model.Insight, error) {
	snap, err := s.loadSnapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	return period.ComputeInsights(snap.transactions, s.now(), snap.user.MonthStartDay, snap.user.CurrencyCode), nil
}
