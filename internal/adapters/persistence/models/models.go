package models

import (
	"time"

	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ============================================================
// Users
// ============================================================

// User represents users table
type User struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	FullName     string    `gorm:"size:150;not null" json:"full_name"`
	Email        string    `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Loans        []Loan    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// ToDomain converts the row to a domain user
func (u *User) ToDomain() *domain.User {
	return &domain.User{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

// UserFromDomain converts a domain user to a row
func UserFromDomain(u *domain.User) *User {
	return &User{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		CreatedAt:    u.CreatedAt,
	}
}

// ============================================================
// Loans
// ============================================================

// Loan represents loans table
type Loan struct {
	ID             uuid.UUID       `gorm:"type:char(36);primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:char(36);index;not null" json:"user_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	InterestRate   decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"`
	TermInMonths   int             `gorm:"not null" json:"term_in_months"`
	MonthlyPayment decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"monthly_payment"`
	Status         string          `gorm:"size:20;index;not null;default:'Pending'" json:"status"`
	RequestDate    time.Time       `gorm:"index;not null" json:"request_date"`
	ReviewDate     *time.Time      `json:"review_date"`
	AdminComments  *string         `gorm:"type:text" json:"admin_comments"`
}

func (Loan) TableName() string {
	return "loans"
}

// ToDomain converts the row to a domain loan
func (l *Loan) ToDomain() *domain.Loan {
	return &domain.Loan{
		ID:             l.ID,
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		TermInMonths:   l.TermInMonths,
		MonthlyPayment: l.MonthlyPayment,
		Status:         domain.LoanStatus(l.Status),
		RequestDate:    l.RequestDate,
		ReviewDate:     l.ReviewDate,
		AdminComments:  l.AdminComments,
		UserID:         l.UserID,
	}
}

// LoanFromDomain converts a domain loan to a row
func LoanFromDomain(l *domain.Loan) *Loan {
	return &Loan{
		ID:             l.ID,
		UserID:         l.UserID,
		Amount:         l.Amount,
		InterestRate:   l.InterestRate,
		TermInMonths:   l.TermInMonths,
		MonthlyPayment: l.MonthlyPayment,
		Status:         string(l.Status),
		RequestDate:    l.RequestDate,
		ReviewDate:     l.ReviewDate,
		AdminComments:  l.AdminComments,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates the application tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Loan{},
	)
}
