package services

import (
	"context"
	"testing"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	f := newLoanFixture()
	svc := NewUserService(f.users, f.loans)
	ctx := context.Background()

	ana := seedUser(t, f.users, "Ana", false)
	seedUser(t, f.users, "Admin", true)

	first, err := f.svc.CreateLoan(ctx, ana.ID, validInput())
	require.NoError(t, err)
	_, err = f.svc.CreateLoan(ctx, ana.ID, validInput())
	require.NoError(t, err)
	_, err = f.svc.ReviewLoan(ctx, first.ID, ReviewLoanInput{Status: "Approved"})
	require.NoError(t, err)

	t.Run("profile counters", func(t *testing.T) {
		p, err := svc.GetProfile(ctx, ana.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, p.Role)
		assert.Equal(t, domain.LoanStatusCounts{Total: 2, Pending: 1, Approved: 1}, p.Loans)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := svc.GetProfile(ctx, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("list", func(t *testing.T) {
		page, err := svc.ListUsers(ctx, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Users, 2)
	})
}

func TestUserService_ListFailure(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	loans := new(mockLoanRepository)
	svc := NewUserService(users, loans)
	ctx := context.Background()
	seedUser(t, users, "Ana", false)

	loans.On("SummarizeByStatus", ctx, mockAnyUserID()).Return(nil, assert.AnError)

	_, err := svc.ListUsers(ctx, 0, 10)
	assert.ErrorIs(t, err, assert.AnError)
}
