package routes

import (
	"time"

	"bank-loan-simulator/internal/adapters/http/handlers"
	"bank-loan-simulator/internal/adapters/http/middleware"
	"bank-loan-simulator/internal/adapters/persistence/repositories"
	"bank-loan-simulator/internal/config"
	"bank-loan-simulator/internal/core/services"
	"bank-loan-simulator/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog"
)

// Services bundles the application services the routes depend on
type Services struct {
	Auth      *services.AuthService
	Loans     *services.LoanService
	Users     *services.UserService
	Dashboard *services.DashboardService
}

// NewServices wires the services over the given stores. cache may be nil.
func NewServices(
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
	cache repositories.CacheRepository,
	cfg *config.Config,
) *Services {
	return &Services{
		Auth:      services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.ExpirationDays),
		Loans:     services.NewLoanService(userRepo, loanRepo, cache, cfg.Redis.CacheTTL),
		Users:     services.NewUserService(userRepo, loanRepo),
		Dashboard: services.NewDashboardService(userRepo, loanRepo, cache, time.Minute),
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, cfg *config.Config, svc *Services, log zerolog.Logger, checks ...handlers.HealthCheck) {
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, checks...)
	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	loanHandler := handlers.NewLoanHandler(svc.Loans, log)
	userHandler := handlers.NewUserHandler(svc.Users, log)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard, log)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	requireAuth := middleware.AuthMiddleware(svc.Auth)

	setupAuthRoutes(api.Group("/auth"), authHandler, requireAuth, cfg)

	loanRoutes := api.Group("/loans", requireAuth, middleware.NoCacheHeaders())
	setupLoanRoutes(loanRoutes, loanHandler)

	userRoutes := api.Group("/users", requireAuth)
	userRoutes.Get("/me", middleware.PrivateCacheHeaders(30*time.Second), userHandler.GetProfile)
	userRoutes.Get("/", middleware.AdminOnly(), userHandler.ListUsers)

	dashboardRoutes := api.Group("/dashboard", requireAuth, middleware.AdminOnly())
	dashboardRoutes.Get("/", dashboardHandler.GetStats)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, requireAuth fiber.Handler, cfg *config.Config) {
	limit := middleware.AuthRateLimiter(cfg.RateLimit.Auth)

	router.Post("/register", limit, handler.Register)
	router.Post("/login", limit, handler.Login)
	router.Get("/me", requireAuth, handler.Me)
}

// setupLoanRoutes configures loan routes. Static paths are registered before
// /:id so they are not captured by it.
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	router.Post("/calculate", handler.Calculate)
	router.Get("/my-loans", handler.MyLoans)

	router.Post("/", handler.Create)
	router.Get("/", middleware.AdminOnly(), handler.List)

	router.Get("/:id", handler.Get)
	router.Put("/:id/review", middleware.AdminOnly(), handler.Review)
	router.Delete("/:id", handler.Delete)
}
