package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig holds the application configuration, loaded from environment
// variables with an optional .env file for local development.
type AppConfig struct {
	DatabaseURL  string `mapstructure:"PGSQL_URL"`
	Port         string `mapstructure:"PORT"`
	IsProduction bool   `mapstructure:"IS_PRODUCTION"`

	// EnableDBCheck makes startup fail fast when the database is unreachable.
	EnableDBCheck bool `mapstructure:"ENABLE_DB_CHECK"`

	JWTSecret         string        `mapstructure:"JWT_SECRET"`
	JWTExpiryDuration time.Duration `mapstructure:"JWT_EXPIRY_DURATION"`
	JWTIssuer         string        `mapstructure:"JWT_ISSUER"`

	// LoginRateLimit uses ulule/limiter's formatted syntax, e.g. "10-M" for
	// ten requests per minute per client IP.
	LoginRateLimit string `mapstructure:"LOGIN_RATE_LIMIT"`

	// CORSAllowedOrigins is a comma-separated origin list.
	CORSAllowedOrigins string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// AllowedOrigins splits the configured origin list.
func (c *AppConfig) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment variables
// take precedence.
func LoadConfig(logger *slog.Logger) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on environment variables")
	}

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("JWT_EXPIRY_DURATION", "24h")
	v.SetDefault("JWT_ISSUER", "dealer_crm_app")
	v.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env vars through Unmarshal; bind
	// each key explicitly.
	for _, key := range []string{
		"PGSQL_URL", "PORT", "IS_PRODUCTION", "ENABLE_DB_CHECK",
		"JWT_SECRET", "JWT_EXPIRY_DURATION", "JWT_ISSUER",
		"LOGIN_RATE_LIMIT", "CORS_ALLOWED_ORIGINS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env var %s: %w", key, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	logger.Info("Configuration loaded",
		slog.String("port", cfg.Port),
		slog.Bool("is_production", cfg.IsProduction),
	)
	return &cfg, nil
}
