package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bank-loan-simulator/internal/adapters/http/handlers"
	"bank-loan-simulator/internal/adapters/http/middleware"
	"bank-loan-simulator/internal/adapters/http/routes"
	"bank-loan-simulator/internal/adapters/persistence/models"
	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/config"
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	_ "bank-loan-simulator/docs" // Swagger docs
)

// @title Bank Loan Simulator API
// @version 1.0
// @description Loan simulation, request and review API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New(os.Getenv("APP_MODE"))
		boot.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(cfg.AppMode)
	if !cfg.EnvFileLoaded {
		log.Debug().Msg("no .env file found, using process environment")
	}

	ctx := context.Background()
	var checks []handlers.HealthCheck

	// Stores
	var (
		userRepo repositories.UserRepository
		loanRepo repositories.LoanRepository
	)
	if cfg.UseMemoryStore() {
		userRepo = repositories.NewMemoryUserRepository()
		loanRepo = repositories.NewMemoryLoanRepository()
		log.Warn().Msg("using in-memory store, data is lost on restart")
	} else {
		db, err := config.ConnectDatabase(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer func() {
			if err := config.CloseDatabase(db); err != nil {
				log.Error().Err(err).Msg("failed to close database")
			}
		}()

		if err := models.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to auto migrate")
		}
		log.Info().Msg("database migration completed")

		userRepo = repositories.NewUserRepository(db)
		loanRepo = repositories.NewLoanRepository(db)
		checks = append(checks, handlers.HealthCheck{
			Name:  "database",
			Check: func(ctx context.Context) error { return config.HealthCheck(ctx, db) },
		})
	}

	// Cache
	var cache repositories.CacheRepository = repositories.NewMemoryCache()
	client, err := config.ConnectRedis(ctx, cfg.Redis)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("redis unavailable, using in-process cache")
	case client != nil:
		defer client.Close()
		cache = repositories.NewRedisCache(client, "bls:")
		checks = append(checks, handlers.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		})
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	}

	if cfg.Seed.Enabled {
		if err := config.NewSeeder(userRepo, cfg.Seed, log).Run(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to seed demo users")
		}
	}

	svc := routes.NewServices(userRepo, loanRepo, cache, cfg)

	cronService := services.NewCronService(svc.Dashboard, cfg.Cron.PendingDigestSpec, log)
	if err := cronService.Start(); err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.Cron.PendingDigestSpec).Msg("invalid cron schedule")
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "Bank Loan Simulator API v1.0",
		ErrorHandler: middleware.ErrorHandler(log),
	})

	middleware.Setup(app, cfg, log)
	routes.Setup(app, cfg, svc, log, checks...)

	go gracefulShutdown(app, log)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// gracefulShutdown stops the server on SIGINT or SIGTERM
func gracefulShutdown(app *fiber.App, log zerolog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
