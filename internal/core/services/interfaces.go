package services

import (
	"context"

	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanUseCase is what the HTTP layer needs from the loan application service
type LoanUseCase interface {
	CreateLoan(ctx context.Context, userID uuid.UUID, input CreateLoanInput) (*LoanRecord, error)
	ReviewLoan(ctx context.Context, loanID uuid.UUID, input ReviewLoanInput) (*LoanRecord, error)
	GetLoansForUser(ctx context.Context, userID uuid.UUID) ([]*LoanRecord, error)
	GetAllLoans(ctx context.Context, input ListLoansInput) (*LoanPage, error)
	GetLoanByID(ctx context.Context, id uuid.UUID) (*LoanRecord, error)
	DeleteLoan(ctx context.Context, id uuid.UUID) (bool, error)
	Quote(ctx context.Context, input CreateLoanInput) (*domain.PaymentQuote, error)
}

// AuthUseCase defines registration, login and token checks
type AuthUseCase interface {
	Register(ctx context.Context, input *RegisterInput) (*AuthResponse, error)
	Login(ctx context.Context, input *LoginInput) (*AuthResponse, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// UserUseCase defines user profile reads
type UserUseCase interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*UserProfile, error)
	ListUsers(ctx context.Context, offset, limit int) (*UserPage, error)
}

// DashboardUseCase defines the admin statistics read
type DashboardUseCase interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
}

// CreateLoanInput for creating or simulating a loan
type CreateLoanInput struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermInMonths int
}

func (in CreateLoanInput) request() domain.LoanRequest {
	return domain.LoanRequest{
		Amount:       in.Amount,
		InterestRate: in.InterestRate,
		TermInMonths: in.TermInMonths,
	}
}

// ReviewLoanInput for approving or rejecting a loan
type ReviewLoanInput struct {
	Status        string
	AdminComments *string
}

// ListLoansInput filters the admin loan listing. An empty Status lists every
// loan; a zero Limit disables paging.
type ListLoansInput struct {
	Status string
	Offset int
	Limit  int
}

var (
	_ LoanUseCase      = (*LoanService)(nil)
	_ AuthUseCase      = (*AuthService)(nil)
	_ UserUseCase      = (*UserService)(nil)
	_ DashboardUseCase = (*DashboardService)(nil)
)
