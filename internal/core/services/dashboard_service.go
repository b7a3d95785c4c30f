package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"

	"github.com/shopspring/decimal"
)

const dashboardCacheKey = "dashboard:stats"

// DashboardService computes admin statistics
type DashboardService struct {
	userRepo repositories.UserRepository
	loanRepo repositories.LoanRepository
	cache    repositories.CacheRepository
	ttl      time.Duration
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service. cache may be nil.
func NewDashboardService(
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
	cache repositories.CacheRepository,
	ttl time.Duration,
) *DashboardService {
	return &DashboardService{
		userRepo: userRepo,
		loanRepo: loanRepo,
		cache:    cache,
		ttl:      ttl,
		now:      time.Now,
	}
}

// DashboardStats represents admin dashboard data
type DashboardStats struct {
	TotalUsers      int64                   `json:"totalUsers"`
	Loans           domain.LoanStatusCounts `json:"loans"`
	TotalRequested  decimal.Decimal         `json:"totalRequested"`
	TotalApproved   decimal.Decimal         `json:"totalApproved"`
	PendingAmount   decimal.Decimal         `json:"pendingAmount"`
	ApprovalRatePct decimal.Decimal         `json:"approvalRatePct"`
	GeneratedAt     time.Time               `json:"generatedAt"`
}

// GetStats returns the cached statistics, computing them on a miss
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	if s.cache != nil {
		if raw, ok, err := s.cache.Get(ctx, dashboardCacheKey); err == nil && ok {
			var stats DashboardStats
			if json.Unmarshal([]byte(raw), &stats) == nil {
				return &stats, nil
			}
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the statistics and stores them in the cache
func (s *DashboardService) Refresh(ctx context.Context) (*DashboardStats, error) {
	_, totalUsers, err := s.userRepo.List(ctx, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	summaries, err := s.loanRepo.SummarizeByStatus(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("summarize loans: %w", err)
	}

	stats := &DashboardStats{
		TotalUsers:      totalUsers,
		TotalRequested:  decimal.Zero,
		TotalApproved:   decimal.Zero,
		PendingAmount:   decimal.Zero,
		ApprovalRatePct: decimal.Zero,
		GeneratedAt:     s.now(),
	}
	for _, sum := range summaries {
		stats.Loans.Add(sum.Status, sum.Count)
		stats.TotalRequested = stats.TotalRequested.Add(sum.Amount)
		switch sum.Status {
		case domain.LoanStatusApproved:
			stats.TotalApproved = stats.TotalApproved.Add(sum.Amount)
		case domain.LoanStatusPending:
			stats.PendingAmount = stats.PendingAmount.Add(sum.Amount)
		}
	}

	if reviewed := stats.Loans.Approved + stats.Loans.Rejected; reviewed > 0 {
		stats.ApprovalRatePct = decimal.NewFromInt(stats.Loans.Approved * 100).
			Div(decimal.NewFromInt(reviewed)).
			Round(2)
	}

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			_ = s.cache.Set(ctx, dashboardCacheKey, string(raw), s.ttl)
		}
	}
	return stats, nil
}
