package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Cron      CronConfig
	Seed      SeedConfig
	RateLimit RateLimitConfig

	// EnvFileLoaded reports whether a .env file was found
	EnvFileLoaded bool
}

// DatabaseConfig holds database configuration. Driver is "mysql" or "memory".
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret         string
	Issuer         string
	ExpirationDays int
}

// RedisConfig holds cache configuration. An empty Addr disables Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// CronConfig holds scheduled job configuration
type CronConfig struct {
	PendingDigestSpec string
}

// SeedConfig controls the demo account seeder
type SeedConfig struct {
	Enabled       bool
	AdminPassword string
	UserPassword  string
}

// RateLimitConfig holds per-IP request limits per minute
type RateLimitConfig struct {
	General int
	Auth    int
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; the process environment always wins
	envLoaded := godotenv.Load() == nil

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	redisCfg, err := loadRedisConfig()
	if err != nil {
		return nil, err
	}

	db := loadDatabaseConfig(appMode)
	if db.Driver != "mysql" && db.Driver != "memory" {
		return nil, fmt.Errorf("invalid DB_DRIVER: '%s' (must be 'mysql' or 'memory')", db.Driver)
	}

	return &Config{
		AppMode:       appMode,
		Port:          getEnv("PORT", "3000"),
		Database:      db,
		JWT:           jwtCfg,
		Redis:         redisCfg,
		Cron:          CronConfig{PendingDigestSpec: getEnv("CRON_PENDING_DIGEST", "30 8 * * *")},
		Seed:          loadSeedConfig(appMode),
		RateLimit:     loadRateLimitConfig(),
		EnvFileLoaded: envLoaded,
	}, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Driver:   strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "bank_loan_simulator"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := modePrefix(mode)

	days, err := strconv.Atoi(getEnv("JWT_EXPIRATION_DAYS", "30"))
	if err != nil || days < 1 {
		return JWTConfig{}, fmt.Errorf("invalid JWT_EXPIRATION_DAYS: must be a positive integer")
	}

	secret := getEnv(prefix+"JWT_SECRET", "")
	if secret == "" {
		if mode == "prod" {
			return JWTConfig{}, fmt.Errorf("%sJWT_SECRET is required in prod mode", prefix)
		}
		secret = "dev_secret_change_me_dev_secret_change_me"
	}

	return JWTConfig{
		Secret:         secret,
		Issuer:         getEnv("JWT_ISSUER", "BankLoanSimulator"),
		ExpirationDays: days,
	}, nil
}

// loadRedisConfig loads cache config
func loadRedisConfig() (RedisConfig, error) {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	ttl, err := time.ParseDuration(getEnv("CACHE_TTL", "5m"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
		CacheTTL: ttl,
	}, nil
}

// loadSeedConfig seeds by default in dev only
func loadSeedConfig(mode string) SeedConfig {
	enabled, err := strconv.ParseBool(getEnv("SEED_DEMO_USERS", strconv.FormatBool(mode == "dev")))
	if err != nil {
		enabled = false
	}

	return SeedConfig{
		Enabled:       enabled,
		AdminPassword: getEnv("SEED_ADMIN_PASSWORD", "Admin123!"),
		UserPassword:  getEnv("SEED_USER_PASSWORD", "User123!"),
	}
}

// loadRateLimitConfig falls back to the defaults on unparsable values
func loadRateLimitConfig() RateLimitConfig {
	general, err := strconv.Atoi(getEnv("RATE_LIMIT_GENERAL", "100"))
	if err != nil || general < 1 {
		general = 100
	}
	auth, err := strconv.Atoi(getEnv("RATE_LIMIT_AUTH", "5"))
	if err != nil || auth < 1 {
		auth = 5
	}
	return RateLimitConfig{General: general, Auth: auth}
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// UseMemoryStore reports whether the in-memory stores replace MySQL
func (c *Config) UseMemoryStore() bool {
	return c.Database.Driver == "memory"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "http://localhost:5173,http://localhost:3000"
		}
		return "https://bank-loan-simulator.example.com"
	}
	return origins
}
