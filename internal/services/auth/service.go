package auth

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/jkwan-hk/eatery/internal/dependencies/clock"
	"github.com/jkwan-hk/eatery/internal/model"
	"github.com/jkwan-hk/eatery/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
)

// Service handles account registration and credential verification
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new auth service
func New(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// Register creates a new account. Username and password are taken verbatim:
// no trimming, no case folding. Only a bcrypt hash of the password is stored.
func (s *Service) Register(ctx context.Context, username, password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// SignIn verifies credentials and returns the session identity (the
// username). Usernames are the storage key, so at most one account can
// match; a missing user and a wrong password are indistinguishable to
// the caller.
func (s *Service) SignIn(ctx context.Context, username, password string) (string, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}

	return user.Username, nil
}
