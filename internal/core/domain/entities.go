package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Role represents user role in the system
type Role string

const (
	RoleUser  Role = "User"
	RoleAdmin Role = "Admin"
)

// User represents a user in the domain layer
type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
}

// Role returns the role carried in access tokens
func (u *User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// LoanStatus is the review state of a loan
type LoanStatus string

const (
	LoanStatusPending  LoanStatus = "Pending"
	LoanStatusApproved LoanStatus = "Approved"
	LoanStatusRejected LoanStatus = "Rejected"
)

// ParseLoanStatus parses a status name, case-insensitively
func ParseLoanStatus(s string) (LoanStatus, bool) {
	for _, status := range []LoanStatus{LoanStatusPending, LoanStatusApproved, LoanStatusRejected} {
		if strings.EqualFold(strings.TrimSpace(s), string(status)) {
			return status, true
		}
	}
	return "", false
}

// Label returns the display text for a status
func (s LoanStatus) Label() string {
	switch s {
	case LoanStatusPending:
		return "Pending"
	case LoanStatusApproved:
		return "Approved"
	case LoanStatusRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

// IsTerminal reports whether no further review is allowed
func (s LoanStatus) IsTerminal() bool {
	return s == LoanStatusApproved || s == LoanStatusRejected
}

// Loan represents a loan request in the domain
type Loan struct {
	ID             uuid.UUID
	Amount         decimal.Decimal
	InterestRate   decimal.Decimal
	TermInMonths   int
	MonthlyPayment decimal.Decimal
	Status         LoanStatus
	RequestDate    time.Time
	ReviewDate     *time.Time
	AdminComments  *string
	UserID         uuid.UUID
}

// LoanRequest is the input for a new loan
type LoanRequest struct {
	Amount       decimal.Decimal
	InterestRate decimal.Decimal
	TermInMonths int
}

// Rounded returns the request with amount and rate at two decimal places,
// the precision they are stored with.
func (r LoanRequest) Rounded() LoanRequest {
	r.Amount = r.Amount.Round(2)
	r.InterestRate = r.InterestRate.Round(2)
	return r
}

// LoanStatusCounts aggregates loans per status
type LoanStatusCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// Add increments the counter for status by n
func (c *LoanStatusCounts) Add(status LoanStatus, n int64) {
	c.Total += n
	switch status {
	case LoanStatusPending:
		c.Pending += n
	case LoanStatusApproved:
		c.Approved += n
	case LoanStatusRejected:
		c.Rejected += n
	}
}
