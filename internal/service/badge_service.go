package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// BadgeService evaluates badge requirements and lists earned badges.
type BadgeService struct {
	badgeRepo    *repository.BadgeRepository
	activityRepo *repository.ActivityRepository
	userRepo     *repository.UserRepository
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(
	badgeRepo *repository.BadgeRepository,
	activityRepo *repository.ActivityRepository,
	userRepo *repository.UserRepository,
	m *metrics.Metrics,
) *BadgeService {
	return &BadgeService{
		badgeRepo:    badgeRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		metrics:      m,
		now:          time.Now,
	}
}

// WithClock returns a copy of the service that reads the current time from now.
func (s *BadgeService) WithClock(now func() time.Time) *BadgeService {
	c := *s
	c.now = now
	return &c
}

// withTx returns a copy of the service whose repositories run inside tx.
func (s *BadgeService) withTx(tx *sql.Tx) *BadgeService {
	c := *s
	c.badgeRepo = s.badgeRepo.WithTx(tx)
	c.activityRepo = s.activityRepo.WithTx(tx)
	c.userRepo = s.userRepo.WithTx(tx)
	return &c
}

// ListEarned returns the user's earned badges, oldest first.
func (s *BadgeService) ListEarned(ctx context.Context, userID string) ([]model.EarnedBadgeResponse, error) {
	earned, err := s.badgeRepo.ListEarned(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]model.EarnedBadgeResponse, 0, len(earned))
	for _, e := range earned {
		resp = append(resp, model.EarnedBadgeResponse{
			Name:        e.Name,
			Description: e.Description,
			Icon:        e.Icon,
			EarnedAt:    e.EarnedAt.Format(model.DateLayout),
		})
	}
	return resp, nil
}

// EvaluateUser awards every badge whose requirement the user now meets and
// returns the newly awarded ones. Badges already earned are never awarded twice.
func (s *BadgeService) EvaluateUser(ctx context.Context, user model.User) ([]model.Badge, error) {
	awarded, err := s.evaluate(ctx, user)
	if err != nil {
		return nil, err
	}
	for _, b := range awarded {
		s.metrics.BadgeAwarded(b.Name)
	}
	return awarded, nil
}

// EvaluateAll re-evaluates badges for every user and returns the number awarded.
func (s *BadgeService) EvaluateAll(ctx context.Context) (int, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		awarded, err := s.EvaluateUser(ctx, u)
		if err != nil {
			return total, fmt.Errorf("failed to evaluate badges for %s: %w", u.Username, err)
		}
		total += len(awarded)
	}
	return total, nil
}

func (s *BadgeService) evaluate(ctx context.Context, user model.User) ([]model.Badge, error) {
	badges, err := s.badgeRepo.ListBadges(ctx)
	if err != nil {
		return nil, err
	}
	if len(badges) == 0 {
		return nil, nil
	}

	count, err := s.activityRepo.CountActivities(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	progress := model.BadgeProgress{
		StreakDays:      user.StreakDays,
		TotalActivities: count,
		TotalFootprint:  user.TotalCarbonFootprint,
	}

	now := s.now().UTC()
	var awarded []model.Badge
	for _, b := range badges {
		if !b.Satisfied(progress) {
			continue
		}
		inserted, err := s.badgeRepo.AwardBadge(ctx, user.ID, b.ID, now)
		if err != nil {
			return nil, err
		}
		if inserted {
			awarded = append(awarded, b)
		}
	}
	return awarded, nil
}
