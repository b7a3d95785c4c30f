package repositories

import (
	"context"
	"errors"

	"bank-loan-simulator/internal/adapters/persistence/models"
	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loanRepository implements LoanRepository interface
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

// Create creates a new loan
func (r *loanRepository) Create(ctx context.Context, loan *domain.Loan) error {
	return r.db.WithContext(ctx).Create(models.LoanFromDomain(loan)).Error
}

// GetByID gets a loan by ID
func (r *loanRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&loan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return loan.ToDomain(), nil
}

// ListByUser gets the loans of one owner, newest first
func (r *loanRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Loan, error) {
	var rows []*models.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("request_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainLoans(rows), nil
}

// List lists loans, newest first
func (r *loanRepository) List(ctx context.Context, filter LoanFilter) ([]*domain.Loan, int64, error) {
	var rows []*models.Loan
	var total int64

	scoped := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Loan{})
		if filter.Status != nil {
			q = q.Where("status = ?", string(*filter.Status))
		}
		return q
	}

	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := scoped().Order("request_date DESC")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return toDomainLoans(rows), total, nil
}

// SummarizeByStatus counts loans and sums requested amounts per status
func (r *loanRepository) SummarizeByStatus(ctx context.Context, userID *uuid.UUID) ([]StatusSummary, error) {
	var rows []struct {
		Status string
		Count  int64
		Amount decimal.Decimal
	}

	query := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]StatusSummary, len(rows))
	for i, row := range rows {
		summaries[i] = StatusSummary{
			Status: domain.LoanStatus(row.Status),
			Count:  row.Count,
			Amount: row.Amount,
		}
	}
	return summaries, nil
}

// UpdateReview writes the review fields with a conditional update keyed on
// the pending status, so only one of two concurrent reviewers succeeds.
func (r *loanRepository) UpdateReview(ctx context.Context, loan *domain.Loan) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Loan{}).
		Where("id = ? AND status = ?", loan.ID, string(domain.LoanStatusPending)).
		Updates(map[string]interface{}{
			"status":         string(loan.Status),
			"review_date":    loan.ReviewDate,
			"admin_comments": loan.AdminComments,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Delete removes a loan
func (r *loanRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Loan{})
	return res.RowsAffected > 0, res.Error
}

func toDomainLoans(rows []*models.Loan) []*domain.Loan {
	loans := make([]*domain.Loan, len(rows))
	for i, row := range rows {
		loans[i] = row.ToDomain()
	}
	return loans
}
