package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/nishant152030/Project-manager-2/internal/state"
	"github.com/nishant152030/Project-manager-2/pkg/models"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username already exists")
)

// Service registers and authenticates users.
type Service struct {
	users  state.UserStore
	tokens *TokenIssuer
	cost   int
}

// NewService creates a Service backed by users and signing with tokens.
func NewService(users state.UserStore, tokens *TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, cost: bcrypt.DefaultCost}
}

// SetHashCost overrides the bcrypt cost. Intended for tests.
func (s *Service) SetHashCost(cost int) {
	s.cost = cost
}

// Tokens returns the issuer used to sign tokens.
func (s *Service) Tokens() *TokenIssuer {
	return s.tokens
}

// Register creates an account and returns a token for it. Passwords longer
// than MaxPasswordBytes fail with ErrPasswordTooLong.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	hash, err := hashPassword(req.Password, s.cost)
	if err != nil {
		return "", err
	}

	u := &models.User{Username: req.Username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, state.ErrConflict) {
			return "", ErrUsernameTaken
		}
		return "", fmt.Errorf("register: %w", err)
	}

	return s.tokens.Issue(u)
}

// Login checks credentials and returns a fresh token.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	u, err := s.users.GetUserByUsername(ctx, req.Username)
	if errors.Is(err, state.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if !CheckPassword(u.PasswordHash, req.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u)
}
