package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Placeholders shown when a loan's owner cannot be resolved
const (
	UnknownOwnerName  = "Unknown user"
	UnknownOwnerEmail = ""
)

// ErrInvalidStatusFilter is returned for an unknown status in a loan listing
var ErrInvalidStatusFilter = domain.NewValidationError("status filter must be Pending, Approved or Rejected")

// LoanRecord is a loan as returned to callers, with its owner denormalized
type LoanRecord struct {
	ID             uuid.UUID         `json:"id"`
	Amount         decimal.Decimal   `json:"amount"`
	InterestRate   decimal.Decimal   `json:"interestRate"`
	TermInMonths   int               `json:"termInMonths"`
	MonthlyPayment decimal.Decimal   `json:"monthlyPayment"`
	Status         domain.LoanStatus `json:"status"`
	StatusLabel    string            `json:"statusLabel"`
	RequestDate    time.Time         `json:"requestDate"`
	ReviewDate     *time.Time        `json:"reviewDate"`
	AdminComments  *string           `json:"adminComments"`
	UserID         uuid.UUID         `json:"userId"`
	UserName       string            `json:"userName"`
	UserEmail      string            `json:"userEmail"`
}

// LoanPage is one page of the admin loan listing
type LoanPage struct {
	Loans []*LoanRecord `json:"loans"`
	Total int64         `json:"total"`
}

// LoanService orchestrates loan creation, review and reads
type LoanService struct {
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository
	cache    repositories.CacheRepository
	quoteTTL time.Duration
	now      func() time.Time
}

// NewLoanService creates a new loan service. cache may be nil, in which case
// quotes are always computed.
func NewLoanService(
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
	cache repositories.CacheRepository,
	quoteTTL time.Duration,
) *LoanService {
	return &LoanService{
		userRepo: userRepo,
		loanRepo: loanRepo,
		cache:    cache,
		quoteTTL: quoteTTL,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (s *LoanService) WithClock(now func() time.Time) *LoanService {
	s.now = now
	return s
}

// CreateLoan files a new pending loan for userID
func (s *LoanService) CreateLoan(ctx context.Context, userID uuid.UUID, input CreateLoanInput) (*LoanRecord, error) {
	owner, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	loan, err := domain.NewLoan(userID, input.request(), s.now())
	if err != nil {
		return nil, err
	}

	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}
	metrics.LoanCreated()
	s.invalidateStats(ctx)

	return newLoanRecord(loan, owner), nil
}

// ReviewLoan approves or rejects a pending loan
func (s *LoanService) ReviewLoan(ctx context.Context, loanID uuid.UUID, input ReviewLoanInput) (*LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}

	target, ok := domain.ParseLoanStatus(input.Status)
	if !ok {
		target = domain.LoanStatus(input.Status)
	}
	if err := loan.Review(target, input.AdminComments, s.now()); err != nil {
		return nil, err
	}

	updated, err := s.loanRepo.UpdateReview(ctx, loan)
	if err != nil {
		return nil, fmt.Errorf("update loan review: %w", err)
	}
	if !updated {
		// Someone else reviewed it between our read and write.
		return nil, domain.ErrLoanAlreadyReviewed
	}
	metrics.LoanReviewed(string(loan.Status))
	s.invalidateStats(ctx)

	return s.record(ctx, loan)
}

// GetLoansForUser lists the loans owned by userID, newest first
func (s *LoanService) GetLoansForUser(ctx context.Context, userID uuid.UUID) ([]*LoanRecord, error) {
	loans, err := s.loanRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user loans: %w", err)
	}
	return s.records(ctx, loans)
}

// GetAllLoans lists every loan, optionally filtered by status
func (s *LoanService) GetAllLoans(ctx context.Context, input ListLoansInput) (*LoanPage, error) {
	filter := repositories.LoanFilter{Offset: input.Offset, Limit: input.Limit}
	if input.Status != "" {
		status, ok := domain.ParseLoanStatus(input.Status)
		if !ok {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = &status
	}

	loans, total, err := s.loanRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	records, err := s.records(ctx, loans)
	if err != nil {
		return nil, err
	}
	return &LoanPage{Loans: records, Total: total}, nil
}

// GetLoanByID gets one loan
func (s *LoanService) GetLoanByID(ctx context.Context, id uuid.UUID) (*LoanRecord, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}
	if loan == nil {
		return nil, domain.ErrLoanNotFound
	}
	return s.record(ctx, loan)
}

// DeleteLoan removes a loan, reporting false when it does not exist
func (s *LoanService) DeleteLoan(ctx context.Context, id uuid.UUID) (bool, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("get loan: %w", err)
	}
	if loan == nil {
		return false, nil
	}

	deleted, err := s.loanRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete loan: %w", err)
	}
	if deleted {
		s.invalidateStats(ctx)
	}
	return deleted, nil
}

// invalidateStats drops the cached dashboard statistics after a loan changes.
// A failed delete only leaves them stale until their TTL.
func (s *LoanService) invalidateStats(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Delete(ctx, dashboardCacheKey)
	}
}

// CalculateMonthlyPayment is the bare installment calculation
func (s *LoanService) CalculateMonthlyPayment(amount, interestRate decimal.Decimal, termInMonths int) decimal.Decimal {
	return domain.MonthlyPayment(amount, interestRate, termInMonths)
}

// Quote validates a simulated request and returns its payment figures.
// Results are cached by input; cache failures fall back to computing.
func (s *LoanService) Quote(ctx context.Context, input CreateLoanInput) (*domain.PaymentQuote, error) {
	req := input.request().Rounded()
	if err := domain.ValidateLoanRequest(req); err != nil {
		return nil, err
	}

	key := quoteKey(req)
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, key); err == nil && ok {
			var cached domain.PaymentQuote
			if json.Unmarshal([]byte(raw), &cached) == nil {
				metrics.Calculation(true)
				return &cached, nil
			}
		}
	}

	quote := domain.Quote(req)
	metrics.Calculation(false)

	if s.cache != nil {
		if raw, err := json.Marshal(quote); err == nil {
			_ = s.cache.Set(ctx, key, string(raw), s.quoteTTL)
		}
	}
	return &quote, nil
}

func quoteKey(req domain.LoanRequest) string {
	return fmt.Sprintf("quote:%s:%s:%d", req.Amount.String(), req.InterestRate.String(), req.TermInMonths)
}

func (s *LoanService) record(ctx context.Context, loan *domain.Loan) (*LoanRecord, error) {
	owner, err := s.userRepo.GetByID(ctx, loan.UserID)
	if err != nil {
		return nil, fmt.Errorf("get loan owner: %w", err)
	}
	return newLoanRecord(loan, owner), nil
}

func (s *LoanService) records(ctx context.Context, loans []*domain.Loan) ([]*LoanRecord, error) {
	owners := make(map[uuid.UUID]*domain.User)
	records := make([]*LoanRecord, len(loans))
	for i, loan := range loans {
		owner, seen := owners[loan.UserID]
		if !seen {
			var err error
			owner, err = s.userRepo.GetByID(ctx, loan.UserID)
			if err != nil {
				return nil, fmt.Errorf("get loan owner: %w", err)
			}
			owners[loan.UserID] = owner
		}
		records[i] = newLoanRecord(loan, owner)
	}
	return records, nil
}

func newLoanRecord(loan *domain.Loan, owner *domain.User) *LoanRecord {
	r := &LoanRecord{
		ID:             loan.ID,
		Amount:         loan.Amount,
		InterestRate:   loan.InterestRate,
		TermInMonths:   loan.TermInMonths,
		MonthlyPayment: loan.MonthlyPayment,
		Status:         loan.Status,
		StatusLabel:    loan.Status.Label(),
		RequestDate:    loan.RequestDate,
		ReviewDate:     loan.ReviewDate,
		AdminComments:  loan.AdminComments,
		UserID:         loan.UserID,
		UserName:       UnknownOwnerName,
		UserEmail:      UnknownOwnerEmail,
	}
	if owner != nil {
		r.UserName = owner.FullName
		r.UserEmail = owner.Email
	}
	return r
}
