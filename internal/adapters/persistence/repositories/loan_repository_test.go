package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bank-loan-simulator/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var loanColumns = []string{
	"id", "user_id", "amount", "interest_rate", "term_in_months",
	"monthly_payment", "status", "request_date", "review_date", "admin_comments",
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return db, mock
}

func reviewedLoan(status domain.LoanStatus) *domain.Loan {
	now := time.Now()
	comments := "ok"
	return &domain.Loan{
		ID:            uuid.New(),
		Status:        status,
		ReviewDate:    &now,
		AdminComments: &comments,
	}
}

func TestLoanRepository_UpdateReview(t *testing.T) {
	updateSQL := "UPDATE `loans` SET .* WHERE .*id = \\? AND status = \\?"

	t.Run("pending row updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)
		loan := reviewedLoan(domain.LoanStatusApproved)

		mock.ExpectExec(updateSQL).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "Approved", loan.ID.String(), "Pending").
			WillReturnResult(sqlmock.NewResult(0, 1))

		updated, err := repo.UpdateReview(context.Background(), loan)

		require.NoError(t, err)
		assert.True(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no pending row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		mock.ExpectExec(updateSQL).WillReturnResult(sqlmock.NewResult(0, 0))

		updated, err := repo.UpdateReview(context.Background(), reviewedLoan(domain.LoanStatusRejected))

		require.NoError(t, err)
		assert.False(t, updated)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		mock.ExpectExec(updateSQL).WillReturnError(assert.AnError)

		updated, err := repo.UpdateReview(context.Background(), reviewedLoan(domain.LoanStatusRejected))

		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, updated)
	})
}

func TestLoanRepository_GetByID(t *testing.T) {
	selectSQL := regexp.QuoteMeta("SELECT * FROM `loans` WHERE id = ?")

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)
		id, userID := uuid.New(), uuid.New()
		requested := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		mock.ExpectQuery(selectSQL).WillReturnRows(sqlmock.NewRows(loanColumns).
			AddRow(id.String(), userID.String(), "5000.00", "8.00", 12, "434.94", "Pending", requested, nil, nil))

		loan, err := repo.GetByID(context.Background(), id)

		require.NoError(t, err)
		require.NotNil(t, loan)
		assert.Equal(t, id, loan.ID)
		assert.Equal(t, userID, loan.UserID)
		assert.True(t, loan.Amount.Equal(decimal.NewFromInt(5000)))
		assert.True(t, loan.MonthlyPayment.Equal(decimal.RequireFromString("434.94")))
		assert.Equal(t, domain.LoanStatusPending, loan.Status)
		assert.Nil(t, loan.ReviewDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewLoanRepository(db)

		mock.ExpectQuery(selectSQL).WillReturnRows(sqlmock.NewRows(loanColumns))

		loan, err := repo.GetByID(context.Background(), uuid.New())

		require.NoError(t, err)
		assert.Nil(t, loan)
	})
}

func TestLoanRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)
	loan, err := domain.NewLoan(uuid.New(), domain.LoanRequest{
		Amount:       decimal.NewFromInt(5000),
		InterestRate: decimal.NewFromInt(8),
		TermInMonths: 12,
	}, time.Now())
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `loans`")).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), loan))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_Delete(t *testing.T) {
	deleteSQL := regexp.QuoteMeta("DELETE FROM `loans` WHERE id = ?")

	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteSQL).WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoanRepository_SummarizeByStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewLoanRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count", "amount"}).
			AddRow("Pending", 2, "1500.00").
			AddRow("Approved", 1, "10000.00"))

	summaries, err := repo.SummarizeByStatus(context.Background(), nil)

	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, domain.LoanStatusPending, summaries[0].Status)
	assert.Equal(t, int64(2), summaries[0].Count)
	assert.True(t, summaries[1].Amount.Equal(decimal.NewFromInt(10000)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
