package repositories

import (
	"context"

	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines user repository interface.
// Lookups return a nil user and nil error when the record does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, int64, error)
}

// LoanRepository defines loan repository interface.
// Lookups return a nil loan and nil error when the record does not exist.
type LoanRepository interface {
	Create(ctx context.Context, loan *domain.Loan) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error)
	List(ctx context.Context, filter LoanFilter) ([]*domain.Loan, int64, error)
	SummarizeByStatus(ctx context.Context, userID *uuid.UUID) ([]StatusSummary, error)
	// UpdateReview persists a review only if the stored loan is still
	// Pending. It reports false when no pending row matched.
	UpdateReview(ctx context.Context, loan *domain.Loan) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// LoanFilter narrows a loan listing. A zero Limit returns every match.
type LoanFilter struct {
	Status *domain.LoanStatus
	Offset int
	Limit  int
}

// StatusSummary aggregates loans sharing a status
type StatusSummary struct {
	Status domain.LoanStatus
	Count  int64
	Amount decimal.Decimal
}
