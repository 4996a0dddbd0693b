// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"github.com/sarmadi/go-chathub/internal/auth"
	"github.com/sarmadi/go-chathub/internal/domain"
	"github.com/sarmadi/go-chathub/internal/repository/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")

	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
)

const passwordMinLength = 8

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		logger:       logger,
	}
}

// Register creates a new account with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if !usernameRegex.MatchString(username) {
		return nil, errors.New("username must be 3-20 characters, alphanumeric or underscore")
	}
	if len(password) < passwordMinLength {
		return nil, fmt.Errorf("password must be at least %d characters", passwordMinLength)
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		s.logger.Warn("registration failed - username already exists", "username", username)
		return nil, ErrUsernameTaken
	}

	u := &domain.User{Username: username}
	if err := u.HashPassword(password); err != nil {
		return nil, err
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		s.logger.Error("registration failed", "username", username, "error", err)
		return nil, errors.New("could not create account")
	}

	s.logger.Info("user registered", "user_id", created.ID)
	return created, nil
}

// Login authenticates a user and returns a signed JWT token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	if username == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed - user not found", "username", username)
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", u.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, []byte(s.jwtSecretKey))
	if err != nil {
		s.logger.Error("JWT token generation failed", "user_id", u.ID, "error", err)
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", u.ID)
	return u, token, nil
}

// ValidateJWTToken checks a token's signature and expiry and returns the user ID.
func (s *AuthService) ValidateJWTToken(tokenString string) (uint, error) {
	return auth.ValidateToken(tokenString, []byte(s.jwtSecretKey))
}
