package domain

import (
	"time"

	"github.com/google/uuid"
)

// NewLoan validates req and builds a pending loan owned by userID.
// Amount and rate are rounded to cents first, so the stored values are
// the basis of the monthly payment, which is fixed here and never recomputed.
func NewLoan(userID uuid.UUID, req LoanRequest, now time.Time) (*Loan, error) {
	req = req.Rounded()
	if err := ValidateLoanRequest(req); err != nil {
		return nil, err
	}

	return &Loan{
		ID:             uuid.New(),
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		TermInMonths:   req.TermInMonths,
		MonthlyPayment: MonthlyPayment(req.Amount, req.InterestRate, req.TermInMonths),
		Status:         LoanStatusPending,
		RequestDate:    now,
		UserID:         userID,
	}, nil
}

// Review moves a pending loan to Approved or Rejected.
//
// Pending -> Approved | Rejected is the only transition; both targets are
// terminal. The loan is left untouched when an error is returned.
func (l *Loan) Review(target LoanStatus, comments *string, now time.Time) error {
	if l.Status != LoanStatusPending {
		return ErrLoanAlreadyReviewed
	}

	switch target {
	case LoanStatusApproved, LoanStatusRejected:
	case LoanStatusPending:
		return ErrPendingTarget
	default:
		return ErrInvalidReviewStatus
	}

	reviewedAt := now
	l.Status = target
	l.ReviewDate = &reviewedAt
	l.AdminComments = comments
	return nil
}
