package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"chargemap/internal/apperr"
	"chargemap/internal/models"
	"chargemap/internal/password"
	"chargemap/internal/repository"
)

// ErrInvalidCredentials represents login failure. One message for unknown
// email and hash mismatch, so the response never leaks which one failed.
var ErrInvalidCredentials = fmt.Errorf("auth: invalid credentials: %w", apperr.ErrUnauthorized)

const minPasswordLength = 6

// UserRepository defines storage contract used by the service.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthService contains registration/login logic.
type AuthService struct {
	repo      UserRepository
	hasher    password.Hasher
	tokenizer *TokenService
	logger    *zap.Logger
}

// NewAuthService builds AuthService.
func NewAuthService(repo UserRepository, hasher password.Hasher, tokenizer *TokenService, logger *zap.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokenizer: tokenizer,
		logger:    logger,
	}
}

// Register creates a new user and issues a token for it.
func (s *AuthService) Register(ctx context.Context, name, email, plain string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	ve := &apperr.ValidationError{}
	if name == "" {
		ve.Add("name", "name is required")
	}
	if email == "" {
		ve.Add("email", "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		ve.Add("email", "email is malformed")
	}
	if len(plain) < minPasswordLength {
		ve.Add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if ve.HasErrors() {
		return nil, "", ve
	}

	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, "", (&apperr.ValidationError{}).Add("email", "email already registered")
		}
		return nil, "", err
	}

	token, err := s.tokenizer.GenerateToken(user.ID.Hex(), user.Name, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.Hex()), zap.String("email", user.Email))
	return user, token, nil
}

// Login authenticates a user and produces a JWT.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || plain == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, plain); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokenizer.GenerateToken(user.ID.Hex(), user.Name, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Verify decodes and validates a bearer token. Used by the gating middleware.
func (s *AuthService) Verify(token string) (*Claims, error) {
	return s.tokenizer.Verify(token)
}
