package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// MonthlyPayment computes the fixed installment of an annuity loan:
//
//	M = P * r(1+r)^n / ((1+r)^n - 1),  r = annualRatePercent / 12 / 100
//
// A zero rate spreads the principal evenly. The result is rounded to cents,
// half away from zero. termMonths must be at least 1; smaller terms yield zero.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	if termMonths < 1 {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(termMonths))
	monthlyRate := annualRatePercent.Div(monthsPerYear).Div(hundred)
	if monthlyRate.IsZero() {
		return principal.Div(months).Round(2)
	}

	// Exponentiation runs in float64; only the rounded cents are kept.
	r := monthlyRate.InexactFloat64()
	p := principal.InexactFloat64()
	power := math.Pow(1+r, float64(termMonths))
	payment := p * (r * power) / (power - 1)

	return decimal.NewFromFloat(payment).Round(2)
}

// PaymentQuote is a simulation result for a loan request
type PaymentQuote struct {
	Amount         decimal.Decimal `json:"amount"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	TermInMonths   int             `json:"termInMonths"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TotalPayment   decimal.Decimal `json:"totalPayment"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// Quote computes the installment and the totals paid over the whole term
func Quote(req LoanRequest) PaymentQuote {
	monthly := MonthlyPayment(req.Amount, req.InterestRate, req.TermInMonths)
	total := monthly.Mul(decimal.NewFromInt(int64(req.TermInMonths)))

	return PaymentQuote{
		Amount:         req.Amount,
		InterestRate:   req.InterestRate,
		TermInMonths:   req.TermInMonths,
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  total.Sub(req.Amount),
	}
}
