package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/auth"
	"github.com/dereden/bloglist/internal/model"
	"github.com/dereden/bloglist/internal/repository"
)

// MinCredentialLength is the minimum length for both username and password.
const MinCredentialLength = 5

// UserService handles registration and user lookups.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register validates credentials, hashes the password, and persists a new
// user with an empty blog set.
//
// Rules:
//   - username and password must both be present and at least 5 characters
//   - the username must not already be taken; a duplicate surfaces as a
//     validation error (400), matching how the store's uniqueness
//     violation is reported to clients
//
// The uniqueness pre-check is advisory; the UNIQUE constraint in the
// store is the real guard, and a conflict slipping through a race is
// translated to the same validation error.
func (s *UserService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if len(username) < MinCredentialLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be at least %d characters long", MinCredentialLength))
	}
	if len(password) < MinCredentialLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters long", MinCredentialLength))
	}

	_, err := s.users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		return nil, apperror.ValidationFailed("username", "username must be unique")
	case !errors.Is(err, apperror.ErrNotFound):
		s.logger.Error("failed to check username uniqueness",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.ValidationFailed("username", "username must be unique")
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns all users with their blog projections populated.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, err
	}
	return users, nil
}

// GetByID returns one user with populated blogs.
// Malformed id → ErrInvalidID; well-formed but absent → ErrNotFound.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}
