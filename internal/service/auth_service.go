package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ecotracker/ecotracker-backend/internal/api/request"
	"github.com/ecotracker/ecotracker-backend/internal/apperrors"
	"github.com/ecotracker/ecotracker-backend/internal/auth"
	"github.com/ecotracker/ecotracker-backend/internal/model"
	"github.com/ecotracker/ecotracker-backend/internal/period"
	"github.com/ecotracker/ecotracker-backend/internal/repository"
)

// AuthService handles account registration and login.
type AuthService struct {
	userRepo        *repository.UserRepository
	sessions        *auth.SessionManager
	defaultCurrency string
}

// NewAuthService creates a new AuthService. New accounts start with defaultCurrency.
func NewAuthService(
	userRepo *repository.UserRepository,
	sessions *auth.SessionManager,
	defaultCurrency string,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		sessions:        sessions,
		defaultCurrency: defaultCurrency,
	}
}

// Register creates a new account. The request must already be validated.
// Returns ErrUsernameTaken or ErrEmailTaken when either is in use.
func (s *AuthService) Register(ctx context.Context, req request.RegisterRequest) (model.User, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	user := model.User{
		Username:      strings.TrimSpace(req.Username),
		Email:         strings.TrimSpace(req.Email),
		PasswordHash:  hash,
		CurrencyCode:  s.defaultCurrency,
		MonthStartDay: period.MinStartDay,
	}

	if err := s.userRepo.InsertUser(ctx, &user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Login checks the credentials and issues a session token.
// Unknown users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req request.LoginRequest) (model.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, strings.TrimSpace(req.Username))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return model.User{}, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to issue session: %w", err)
	}

	return user, token, nil
}
