package repositories

import (
	"context"
	"sort"
	"sync"

	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MemoryUserRepository is an in-memory UserRepository, used when the
// application runs without MySQL and in tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]domain.User
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[uuid.UUID]domain.User)}
}

// Create stores a new user
func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyRegistered
		}
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID gets a user by ID
func (r *MemoryUserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

// GetByEmail gets a user by email
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

// ExistsByEmail checks if email exists
func (r *MemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.GetByEmail(ctx, email)
	return u != nil, err
}

// Update replaces a stored user
func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.ID] = *user
	return nil
}

// Delete removes a user
func (r *MemoryUserRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

// List lists users, newest first
func (r *MemoryUserRepository) List(_ context.Context, offset, limit int) ([]*domain.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		all = append(all, &u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return page(all, offset, limit), int64(len(all)), nil
}

// MemoryLoanRepository is an in-memory LoanRepository
type MemoryLoanRepository struct {
	mu    sync.RWMutex
	loans map[uuid.UUID]domain.Loan
}

// NewMemoryLoanRepository creates an empty in-memory loan repository
func NewMemoryLoanRepository() *MemoryLoanRepository {
	return &MemoryLoanRepository{loans: make(map[uuid.UUID]domain.Loan)}
}

// Create stores a new loan
func (r *MemoryLoanRepository) Create(_ context.Context, loan *domain.Loan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loans[loan.ID] = copyLoan(loan)
	return nil
}

// GetByID gets a loan by ID
func (r *MemoryLoanRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Loan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.loans[id]
	if !ok {
		return nil, nil
	}
	found := copyLoan(&l)
	return &found, nil
}

// ListByUser gets the loans of one owner, newest first
func (r *MemoryLoanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	return r.collect(func(l *domain.Loan) bool { return l.UserID == userID }), nil
}

// List lists loans, newest first
func (r *MemoryLoanRepository) List(_ context.Context, filter LoanFilter) ([]*domain.Loan, int64, error) {
	all := r.collect(func(l *domain.Loan) bool {
		return filter.Status == nil || l.Status == *filter.Status
	})
	if filter.Limit <= 0 {
		return all, int64(len(all)), nil
	}
	return page(all, filter.Offset, filter.Limit), int64(len(all)), nil
}

// SummarizeByStatus counts loans and sums requested amounts per status
func (r *MemoryLoanRepository) SummarizeByStatus(_ context.Context, userID *uuid.UUID) ([]StatusSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byStatus := make(map[domain.LoanStatus]*StatusSummary)
	for _, l := range r.loans {
		if userID != nil && l.UserID != *userID {
			continue
		}
		s, ok := byStatus[l.Status]
		if !ok {
			s = &StatusSummary{Status: l.Status, Amount: decimal.Zero}
			byStatus[l.Status] = s
		}
		s.Count++
		s.Amount = s.Amount.Add(l.Amount)
	}

	summaries := make([]StatusSummary, 0, len(byStatus))
	for _, s := range byStatus {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Status < summaries[j].Status })
	return summaries, nil
}

// UpdateReview stores the review only while the stored loan is pending
func (r *MemoryLoanRepository) UpdateReview(_ context.Context, loan *domain.Loan) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.loans[loan.ID]
	if !ok || stored.Status != domain.LoanStatusPending {
		return false, nil
	}
	stored.Status = loan.Status
	stored.ReviewDate = loan.ReviewDate
	stored.AdminComments = loan.AdminComments
	r.loans[loan.ID] = copyLoan(&stored)
	return true, nil
}

// Delete removes a loan
func (r *MemoryLoanRepository) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.loans[id]; !ok {
		return false, nil
	}
	delete(r.loans, id)
	return true, nil
}

func (r *MemoryLoanRepository) collect(keep func(*domain.Loan) bool) []*domain.Loan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loans := make([]*domain.Loan, 0)
	for _, l := range r.loans {
		if !keep(&l) {
			continue
		}
		c := copyLoan(&l)
		loans = append(loans, &c)
	}
	sort.Slice(loans, func(i, j int) bool {
		return loans[i].RequestDate.After(loans[j].RequestDate)
	})
	return loans
}

func copyLoan(l *domain.Loan) domain.Loan {
	c := *l
	if l.ReviewDate != nil {
		t := *l.ReviewDate
		c.ReviewDate = &t
	}
	if l.AdminComments != nil {
		s := *l.AdminComments
		c.AdminComments = &s
	}
	return c
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return items[offset:end]
}
