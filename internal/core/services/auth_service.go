package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/jwt"
	"bank-loan-simulator/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService handles authentication business logic
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   jwt.Settings
	now      func() time.Time
}

// NewAuthService creates a new auth service. The token settings are passed in
// explicitly; the service never reads configuration on its own.
func NewAuthService(userRepo repositories.UserRepository, secret, issuer string, expirationDays int) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens: jwt.Settings{
			Secret:         secret,
			Issuer:         issuer,
			ExpirationDays: expirationDays,
		},
		now: time.Now,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	FullName string `json:"fullName" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	UserID   uuid.UUID `json:"userId"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	IsAdmin  bool      `json:"isAdmin"`
	Token    string    `json:"token"`
}

// Register creates a regular user account and signs them in
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := normalizeEmail(input.Email)

	if fullName == "" {
		return nil, domain.ErrFullNameRequired
	}
	if email == "" {
		return nil, domain.ErrEmailRequired
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrPasswordTooShort
	}
	if password.TooLong(input.Password) {
		return nil, domain.ErrPasswordTooLong
	}

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	hashed, err := password.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.respond(user)
}

// Login authenticates a user by email and password
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	// Unknown email and wrong password look the same to the caller.
	if user == nil || !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.respond(user)
}

// ValidateToken checks signature, issuer and expiry of an access token
func (s *AuthService) ValidateToken(token string) (*jwt.Claims, error) {
	return jwt.ValidateAccessToken(token, s.tokens)
}

func (s *AuthService) respond(user *domain.User) (*AuthResponse, error) {
	token, err := jwt.GenerateAccessToken(jwt.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role()),
	}, s.tokens)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &AuthResponse{
		UserID:   user.ID,
		FullName: user.FullName,
		Email:    user.Email,
		IsAdmin:  user.IsAdmin,
		Token:    token,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
