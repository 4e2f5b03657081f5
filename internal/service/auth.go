// Package service — authentication business logic.
//
// AuthService sits between the login handler and the user repository /
// auth utilities:
//
//	AuthHandler (HTTP) → AuthService (credential rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT) + PasswordService (bcrypt)
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dereden/bloglist/internal/apperror"
	"github.com/dereden/bloglist/internal/auth"
	"github.com/dereden/bloglist/internal/repository"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// LoginResult is returned on a successful login: the signed token plus the
// identity it encodes, so clients don't have to decode the JWT themselves.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	ID       string `json:"id"`
}

// Login verifies a username/password pair and issues a token.
//
// Unknown username and wrong password both return the same ErrUnauthorized
// — responses must not reveal which half of the credentials was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("invalid username or password")
		}
		s.logger.Error("failed to look up user for login",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("invalid username or password")
	}

	token, err := s.tokens.Generate(user.ID, user.Username)
	if err != nil {
		s.logger.Error("failed to generate token",
			slog.String("userID", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user logged in",
		slog.String("userID", user.ID),
		slog.String("username", user.Username),
	)

	return &LoginResult{
		Token:    token,
		Username: user.Username,
		ID:       user.ID,
	}, nil
}
