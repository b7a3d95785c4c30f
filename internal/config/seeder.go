package config

import (
	"context"
	"fmt"
	"time"

	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/core/domain"
	"bank-loan-simulator/internal/pkg/password"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	seedAdminID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	seedUserID  = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

// Seeder creates the demo accounts
type Seeder struct {
	users repositories.UserRepository
	cfg   SeedConfig
	log   zerolog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repositories.UserRepository, cfg SeedConfig, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, cfg: cfg, log: log}
}

// Run creates the demo admin and user when they are missing
func (s *Seeder) Run(ctx context.Context) error {
	accounts := []struct {
		id       uuid.UUID
		name     string
		email    string
		password string
		admin    bool
	}{
		{seedAdminID, "System Administrator", "admin@test.com", s.cfg.AdminPassword, true},
		{seedUserID, "Standard User", "usuario@example.com", s.cfg.UserPassword, false},
	}

	for _, a := range accounts {
		exists, err := s.users.ExistsByEmail(ctx, a.email)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}
		if exists {
			continue
		}

		hashed, err := password.Hash(a.password)
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}

		err = s.users.Create(ctx, &domain.User{
			ID:           a.id,
			FullName:     a.name,
			Email:        a.email,
			PasswordHash: hashed,
			IsAdmin:      a.admin,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			return fmt.Errorf("seed %s: %w", a.email, err)
		}

		s.log.Info().Str("email", a.email).Bool("admin", a.admin).Msg("demo account created")
	}

	return nil
}
