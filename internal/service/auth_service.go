// Package service holds the business logic between HTTP handlers and
// repositories.
package service

import (
	"context"
	"strings"

	"devfolio/internal/auth"
	"devfolio/internal/models"
	"devfolio/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// RegisterInput carries the fields submitted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// NewAuthService returns a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Register creates an account and issues a token for it. The password is
// stored bcrypt-hashed and the avatar is derived from the email. A duplicate
// email fails with a conflict before any write happens.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", models.NewConflictError("User already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Password: string(hashedPassword),
		Avatar:   models.GravatarURL(email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", models.NewUnauthorizedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	return user, token, nil
}
