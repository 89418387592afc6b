package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dontbanhemp/action-server/internal/apperror"
	"github.com/dontbanhemp/action-server/internal/model"
	"github.com/dontbanhemp/action-server/internal/repository"
)

// UserService handles campaign participant registration.
type UserService struct {
	users  repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(users repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// CreateUserParams is the registration form payload.
type CreateUserParams struct {
	Email             string
	ZipCode           string
	Role              model.Role
	Name              string
	Phone             string
	BusinessName      string
	StoryOptIn        bool
	WeeklyDigestOptIn bool
}

// Create registers a participant, idempotently.
//
// Registering an email that already exists is not an error: the existing
// row is returned unchanged, original ID and all. The uniqueness check is
// the INSERT itself — a conflict from the storage layer is recovered by
// re-fetching, so two concurrent first submissions both succeed.
func (s *UserService) Create(ctx context.Context, params CreateUserParams) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email address is required")
	}

	zipCode := strings.TrimSpace(params.ZipCode)
	if !zipPattern.MatchString(zipCode) {
		return nil, apperror.ValidationFailed("zipCode", "Invalid zip code. Must be 5 digits.")
	}

	if !params.Role.Valid() {
		return nil, apperror.ValidationFailed("role", fmt.Sprintf("unknown role %q", params.Role))
	}

	user := &model.User{
		Email:             email,
		ZipCode:           zipCode,
		Role:              params.Role,
		Name:              strings.TrimSpace(params.Name),
		Phone:             strings.TrimSpace(params.Phone),
		BusinessName:      strings.TrimSpace(params.BusinessName),
		StoryOptIn:        params.StoryOptIn,
		WeeklyDigestOptIn: params.WeeklyDigestOptIn,
	}

	err := s.users.Create(ctx, user)
	if err == nil {
		s.logger.Info("user registered",
			slog.String("id", user.ID),
			slog.String("role", string(user.Role)),
		)
		return user, nil
	}

	if errors.Is(err, apperror.ErrConflict) {
		existing, fetchErr := s.users.GetByEmail(ctx, email)
		if fetchErr != nil {
			return nil, fmt.Errorf("fetching existing user after conflict: %w", fetchErr)
		}
		return existing, nil
	}

	s.logger.Error("failed to create user", slog.String("error", err.Error()))
	return nil, fmt.Errorf("creating user: %w", err)
}
