package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/metrics"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// ActivityListLimit caps the activity listing.
const ActivityListLimit = 50

// ActivityResult is the outcome of logging one activity.
type ActivityResult struct {
	Activity model.Activity
	User     model.User
	Awarded  []model.Badge
}

// ActivityService logs carbon activities and maintains the footprint, the daily
// streak and badge awards that follow from them.
type ActivityService struct {
	db           *sql.DB
	activityRepo *repository.ActivityRepository
	userRepo     *repository.UserRepository
	badges       *BadgeService
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewActivityService creates a new ActivityService.
func NewActivityService(
	db *sql.DB,
	activityRepo *repository.ActivityRepository,
	userRepo *repository.UserRepository,
	badges *BadgeService,
	m *metrics.Metrics,
) *ActivityService {
	return &ActivityService{
		db:           db,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		badges:       badges,
		metrics:      m,
		now:          time.Now,
	}
}

// WithClock returns a copy of the service, and of its badge evaluator, that
// reads the current time from now.
func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	c := *s
	c.now = now
	c.badges = s.badges.WithClock(now)
	return &c
}

// ListActivities returns the user's latest activities, newest first.
func (s *ActivityService) ListActivities(ctx context.Context, userID string) ([]model.Activity, error) {
	return s.activityRepo.ListActivities(ctx, userID, ActivityListLimit)
}

// LogActivity records a validated activity dated today (UTC) and, in the same
// database transaction, adds its emission to the user's footprint, advances the
// streak and awards any badges now earned.
func (s *ActivityService) LogActivity(ctx context.Context, userID string, req request.CreateActivityRequest) (ActivityResult, error) {
	now := s.now()
	today := utcToday(now)

	activity := model.Activity{
		UserID:       userID,
		ActivityType: strings.TrimSpace(req.ActivityType),
		Category:     strings.TrimSpace(req.Category),
		Value:        *req.Value,
		Unit:         strings.TrimSpace(req.Unit),
		Date:         today,
		Description:  strings.TrimSpace(req.Description),
		CreatedAt:    now.UTC(),
	}
	activity.CarbonEmission = model.CarbonEmission(activity.Category, activity.ActivityType, activity.Value)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ActivityResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	userRepo := s.userRepo.WithTx(tx)

	user, err := userRepo.GetUser(ctx, userID)
	if err != nil {
		return ActivityResult{}, err
	}

	if err := s.activityRepo.WithTx(tx).InsertActivity(ctx, &activity); err != nil {
		return ActivityResult{}, err
	}

	user.TotalCarbonFootprint += activity.CarbonEmission
	user.StreakDays = nextStreak(user.StreakDays, user.LastActivityDate, today)
	user.LastActivityDate = &today

	if err := userRepo.UpdateCarbonState(ctx, user); err != nil {
		return ActivityResult{}, err
	}

	awarded, err := s.badges.withTx(tx).evaluate(ctx, user)
	if err != nil {
		return ActivityResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return ActivityResult{}, fmt.Errorf("failed to commit activity: %w", err)
	}

	s.metrics.ActivityLogged(activity.Category, activity.CarbonEmission)
	for _, b := range awarded {
		s.metrics.BadgeAwarded(b.Name)
	}

	return ActivityResult{Activity: activity, User: user, Awarded: awarded}, nil
}

// nextStreak advances a daily streak for an activity logged on today.
//
//   - first activity ever: 1
//   - last activity yesterday: streak + 1
//   - last activity more than a day ago: 1
//   - last activity today: unchanged
func nextStreak(streak int, lastActivity *time.Time, today time.Time) int {
	if lastActivity == nil {
		return 1
	}

	gap := int(today.Sub(utcToday(*lastActivity)).Hours() / 24)
	switch {
	case gap == 1:
		return streak + 1
	case gap > 1:
		return 1
	default:
		return streak
	}
}

// ExpireStreaks resets the streak of every user who logged nothing yesterday or
// today. Returns the number of streaks reset.
func (s *ActivityService) ExpireStreaks(ctx context.Context) (int64, error) {
	yesterday := utcToday(s.now()).AddDate(0, 0, -1)
	return s.userRepo.ExpireStreaks(ctx, yesterday)
}
