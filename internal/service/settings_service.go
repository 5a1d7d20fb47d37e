package service

import (
	"context"
	"strings"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// SettingsService reads and updates a user's profile and finance preferences.
type SettingsService struct {
	userRepo        *repository.UserRepository
	defaultCurrency string
}

// NewSettingsService creates a new SettingsService.
// A blank currency in an update resets the user to defaultCurrency.
func NewSettingsService(userRepo *repository.UserRepository, defaultCurrency string) *SettingsService {
	return &SettingsService{
		userRepo:        userRepo,
		defaultCurrency: defaultCurrency,
	}
}

// GetSettings returns the profile view of a user.
func (s *SettingsService) GetSettings(ctx context.Context, userID string) (model.UserSettings, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return model.UserSettings{}, err
	}
	return settingsOf(user), nil
}

// UpdateSettings applies a validated settings request.
//
// Rules:
//   - username and email change only when non-blank and different; a clash with
//     another account returns ErrUsernameTaken / ErrEmailTaken
//   - currency is upper-cased; blank resets to the default currency
//   - month_start_day is applied only when it parsed and lies in 1..28,
//     otherwise the stored value is kept without error
//   - new_password must equal confirm_password (ErrPasswordMismatch)
//
// Nothing is persisted when any rule fails.
func (s *SettingsService) UpdateSettings(ctx context.Context, userID string, req request.UpdateSettingsRequest) (model.UserSettings, error) {
	user, err := s.userRepo.GetUser(ctx, userID)
	if err != nil {
		return model.UserSettings{}, err
	}

	if username := strings.TrimSpace(req.Username); username != "" {
		user.Username = username
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		user.Email = email
	}

	user.CurrencyCode = strings.ToUpper(strings.TrimSpace(req.CurrencyCode))
	if user.CurrencyCode == "" {
		user.CurrencyCode = s.defaultCurrency
	}

	if req.MonthStartDay.Valid &&
		req.MonthStartDay.Value >= period.MinStartDay &&
		req.MonthStartDay.Value <= period.MaxStartDay {
		user.MonthStartDay = req.MonthStartDay.Value
	}

	var newHash string
	if req.NewPassword != "" {
		if req.NewPassword != req.ConfirmPassword {
			return model.UserSettings{}, apperrors.ErrPasswordMismatch
		}
		newHash, err = auth.HashPassword(req.NewPassword)
		if err != nil {
			return model.UserSettings{}, err
		}
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return model.UserSettings{}, err
	}

	if newHash != "" {
		if err := s.userRepo.UpdatePassword(ctx, user.ID, newHash); err != nil {
			return model.UserSettings{}, err
		}
	}

	return settingsOf(user), nil
}

func settingsOf(u model.User) model.UserSettings {
	return model.UserSettings{
		Username:      u.Username,
		Email:         u.Email,
		CurrencyCode:  u.CurrencyCode,
		MonthStartDay: u.MonthStartDay,
	}
}
