package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/dealerhq/dealer_crm_app/internal/core/services"
	"github.com/dealerhq/dealer_crm_app/internal/handlers"
	"github.com/dealerhq/dealer_crm_app/internal/middleware"
	"github.com/dealerhq/dealer_crm_app/internal/platform/config"
	"github.com/dealerhq/dealer_crm_app/internal/repositories/database/pgsql"
	"github.com/dealerhq/dealer_crm_app/pkg/database"
)

// @title           Dealer CRM API
// @version         1.0
// @description     Lead tracking, finance approval and commission settlement for dealership sales teams.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Error("Failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		if cfg.EnableDBCheck {
			logger.Error("Failed to connect to database", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Warn("Continuing without verified database connection", slog.String("error", err.Error()))
	}
	if pool != nil {
		defer pool.Close()
	}

	repos := pgsql.NewRepositoryProvider(pool)
	serviceContainer := services.NewServiceContainer(cfg, repos)

	loginLimiter, err := newLoginLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Failed to configure login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.StructuredLoggingMiddleware(logger))
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.RegisterCustomValidators()
	handlers.RegisterRoutes(engine, cfg, serviceContainer, pool, loginLimiter)

	logger.Info("Starting server", slog.String("port", cfg.Port))
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Error("Server exited", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	logger.Info("Database migrations applied")
	return nil
}

func newLoginLimiter(formatted string) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, err
	}
	return limiter.New(memory.NewStore(), rate), nil
}
