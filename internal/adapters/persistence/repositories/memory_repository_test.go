package repositories

import (
	"context"
	"testing"
	"time"

	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storedLoan(t *testing.T, repo *MemoryLoanRepository, userID uuid.UUID, amount int64, requested time.Time) *domain.Loan {
	t.Helper()

	loan, err := domain.NewLoan(userID, domain.LoanRequest{
		Amount:       decimal.NewFromInt(amount),
		InterestRate: decimal.NewFromInt(10),
		TermInMonths: 12,
	}, requested)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), loan))
	return loan
}

func TestMemoryUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryUserRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	alice := &domain.User{ID: uuid.New(), FullName: "Alice", Email: "alice@example.com", CreatedAt: base}
	bob := &domain.User{ID: uuid.New(), FullName: "Bob", Email: "bob@example.com", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	t.Run("duplicate email rejected", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{ID: uuid.New(), Email: "alice@example.com"})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("lookups", func(t *testing.T) {
		found, err := repo.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, bob.ID, found.ID)

		missing, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, missing)

		exists, err := repo.ExistsByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("list newest first with paging", func(t *testing.T) {
		users, total, err := repo.List(ctx, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, users, 1)
		assert.Equal(t, "Bob", users[0].FullName)

		users, _, err = repo.List(ctx, 5, 10)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("delete", func(t *testing.T) {
		deleted, err := repo.Delete(ctx, alice.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, alice.ID)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestMemoryLoanRepository_ListOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLoanRepository()
	owner, other := uuid.New(), uuid.New()
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

	first := storedLoan(t, repo, owner, 1000, base)
	second := storedLoan(t, repo, owner, 2000, base.Add(time.Minute))
	storedLoan(t, repo, other, 3000, base.Add(2*time.Minute))

	mine, err := repo.ListByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, second.ID, mine[0].ID)
	assert.Equal(t, first.ID, mine[1].ID)

	all, total, err := repo.List(ctx, LoanFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, all, 3)

	paged, total, err := repo.List(ctx, LoanFilter{Offset: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, paged, 1)
	assert.Equal(t, second.ID, paged[0].ID)
}

func TestMemoryLoanRepository_UpdateReview(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLoanRepository()
	loan := storedLoan(t, repo, uuid.New(), 5000, time.Now())

	comments := "approved"
	require.NoError(t, loan.Review(domain.LoanStatusApproved, &comments, time.Now()))

	updated, err := repo.UpdateReview(ctx, loan)
	require.NoError(t, err)
	assert.True(t, updated)

	// a second reviewer working from a stale pending copy loses
	updated, err = repo.UpdateReview(ctx, loan)
	require.NoError(t, err)
	assert.False(t, updated)

	stored, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusApproved, stored.Status)
	require.NotNil(t, stored.AdminComments)
	assert.Equal(t, "approved", *stored.AdminComments)

	approved := domain.LoanStatusApproved
	filtered, total, err := repo.List(ctx, LoanFilter{Status: &approved})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, filtered, 1)
}

func TestMemoryLoanRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLoanRepository()
	loan := storedLoan(t, repo, uuid.New(), 5000, time.Now())

	got, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	got.Status = domain.LoanStatusRejected

	again, err := repo.GetByID(ctx, loan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LoanStatusPending, again.Status)
}

func TestMemoryLoanRepository_SummarizeByStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLoanRepository()
	owner := uuid.New()
	now := time.Now()

	storedLoan(t, repo, owner, 1000, now)
	storedLoan(t, repo, owner, 500, now)
	other := storedLoan(t, repo, uuid.New(), 7000, now)
	require.NoError(t, other.Review(domain.LoanStatusRejected, nil, now))
	_, err := repo.UpdateReview(ctx, other)
	require.NoError(t, err)

	summaries, err := repo.SummarizeByStatus(ctx, nil)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, domain.LoanStatusPending, summaries[0].Status)
	assert.Equal(t, int64(2), summaries[0].Count)
	assert.True(t, summaries[0].Amount.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, domain.LoanStatusRejected, summaries[1].Status)

	mine, err := repo.SummarizeByStatus(ctx, &owner)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, int64(2), mine[0].Count)
}

func TestMemoryLoanRepository_OutOfRangePaging(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryLoanRepository()
	storedLoan(t, repo, uuid.New(), 1000, time.Now())

	for _, filter := range []LoanFilter{
		{Offset: -20, Limit: 20},
		{Offset: 1 << 62, Limit: 100},
	} {
		loans, total, err := repo.List(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Empty(t, loans)
	}
}
