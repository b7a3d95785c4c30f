package domain

import "github.com/shopspring/decimal"

// Loan request bounds
const (
	MinTermMonths = 1
	MaxTermMonths = 240
)

var (
	MaxLoanAmount   = decimal.NewFromInt(100_000_000)
	MaxInterestRate = decimal.NewFromInt(50)
)

// ValidateLoanRequest checks the request bounds and returns the first violation
func ValidateLoanRequest(req LoanRequest) error {
	if !req.Amount.IsPositive() {
		return ErrAmountNotPositive
	}
	if req.Amount.GreaterThan(MaxLoanAmount) {
		return ErrAmountTooLarge
	}
	if req.InterestRate.IsNegative() || req.InterestRate.GreaterThan(MaxInterestRate) {
		return ErrInterestOutOfRange
	}
	if req.TermInMonths < MinTermMonths || req.TermInMonths > MaxTermMonths {
		return ErrTermOutOfRange
	}
	return nil
}
