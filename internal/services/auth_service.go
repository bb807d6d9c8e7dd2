package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dcamposl/resilient-auth/internal/apperrors"
	"github.com/dcamposl/resilient-auth/internal/auth"
	"github.com/dcamposl/resilient-auth/internal/repository"
)

// LoginResult bundles the issued token with the claims it asserts, so the
// caller does not need a second round trip to learn what was minted.
type LoginResult struct {
	Token   string
	UserID  int64
	Email   string
	IsAdmin bool
}

// AuthServiceProvider defines the interface for authentication services.
type AuthServiceProvider interface {
	Login(ctx context.Context, email, password, messageID string) (*LoginResult, error)
	ValidateToken(token string) (*auth.Claims, error)
}

// AuthService authenticates credentials and mints tokens.
type AuthService struct {
	repo   repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens}
}

// Login checks the credentials shape, looks up the user, verifies the
// password, and issues a token. An unknown email and a wrong password
// collapse into the same INVALID_CREDENTIALS failure so that callers get no
// signal about which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password, messageID string) (*LoginResult, error) {
	log.Info().Str("message_id", messageID).Str("email", email).Msg("Starting login")

	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}
	if user == nil {
		return nil, apperrors.Business(apperrors.InvalidCredentials)
	}

	if !s.hasher.Matches(password, user.Password) {
		return nil, apperrors.Business(apperrors.InvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Admin())
	if err != nil {
		return nil, apperrors.Technical(apperrors.InternalError, err)
	}

	log.Info().Str("message_id", messageID).Int64("user_id", user.ID).Msg("Login successful")
	return &LoginResult{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.Admin(),
	}, nil
}

// ValidateToken verifies a bearer token and returns its claims. Pure
// delegation to the token service.
func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	return s.tokens.Verify(token)
}

// validateCredentials checks the login request shape, email first.
func validateCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.Business(apperrors.UserEmailRequired)
	}
	if strings.TrimSpace(password) == "" {
		return apperrors.Business(apperrors.UserPasswordRequired)
	}
	return nil
}
