package services

import (
	"context"
	"time"

	"bank-loan-simulator/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// CronService runs scheduled background jobs
type CronService struct {
	cron      *cron.Cron
	dashboard *DashboardService
	spec      string
	log       zerolog.Logger
}

// NewCronService creates a new cron service. spec is a standard five-field
// cron expression for the pending-loan digest.
func NewCronService(dashboard *DashboardService, spec string, log zerolog.Logger) *CronService {
	return &CronService{
		cron:      cron.New(),
		dashboard: dashboard,
		spec:      spec,
		log:       log.With().Str("component", "cron").Logger(),
	}
}

// Start schedules the jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.RunPendingDigest(ctx); err != nil {
			s.log.Error().Err(err).Msg("pending loan digest failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.spec).Msg("cron started")
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("cron stopped")
}

// RunPendingDigest refreshes dashboard statistics and reports the pending backlog
func (s *CronService) RunPendingDigest(ctx context.Context) error {
	stats, err := s.dashboard.Refresh(ctx)
	if err != nil {
		return err
	}

	metrics.SetPendingLoans(stats.Loans.Pending)

	event := s.log.Info()
	if stats.Loans.Pending > 0 {
		event = s.log.Warn()
	}
	event.
		Int64("pending", stats.Loans.Pending).
		Str("pending_amount", stats.PendingAmount.StringFixed(2)).
		Msg("pending loan digest")
	return nil
}
