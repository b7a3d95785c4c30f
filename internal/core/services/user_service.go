package services

import (
	"context"
	"fmt"
	"time"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
)

// UserService handles user profile reads
type UserService struct {
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repositories.UserRepository, loanRepo repositories.LoanRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// UserProfile is a user with their loan counters
type UserProfile struct {
	ID        uuid.UUID               `json:"id"`
	FullName  string                  `json:"fullName"`
	Email     string                  `json:"email"`
	IsAdmin   bool                    `json:"isAdmin"`
	Role      domain.Role             `json:"role"`
	CreatedAt time.Time               `json:"createdAt"`
	Loans     domain.LoanStatusCounts `json:"loans"`
}

// UserPage is one page of the user listing
type UserPage struct {
	Users []*UserProfile `json:"users"`
	Total int64          `json:"total"`
}

// GetProfile gets a user with loan counters
func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.profile(ctx, user)
}

// ListUsers lists users, newest first
func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (*UserPage, error) {
	users, total, err := s.userRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	profiles := make([]*UserProfile, len(users))
	for i, user := range users {
		if profiles[i], err = s.profile(ctx, user); err != nil {
			return nil, err
		}
	}
	return &UserPage{Users: profiles, Total: total}, nil
}

func (s *UserService) profile(ctx context.Context, user *domain.User) (*UserProfile, error) {
	summaries, err := s.loanRepo.SummarizeByStatus(ctx, &user.ID)
	if err != nil {
		return nil, fmt.Errorf("summarize loans: %w", err)
	}

	p := &UserProfile{
		ID:        user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		Role:      user.Role(),
		CreatedAt: user.CreatedAt,
	}
	for _, sum := range summaries {
		p.Loans.Add(sum.Status, sum.Count)
	}
	return p, nil
}
