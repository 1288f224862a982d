package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/primetrade/taskboard-api/internal/config"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/platform/postgres"
	"github.com/primetrade/taskboard-api/internal/platform/redis"
	"github.com/primetrade/taskboard-api/internal/service"
	"github.com/primetrade/taskboard-api/internal/service/auth"
	"github.com/primetrade/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	taskStore store.TaskStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      *service.TaskService

	// Optional Redis-backed components; nil when Redis is not configured
	listCache   *redis.TaskListCache
	rateLimiter *redis.FixedWindowLimiter
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger,
// and database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	app.userStore = postgres.NewPostgresUserStore(db, hasher, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	// Redis is advisory: when unavailable or unconfigured the API works
	// uncached and unthrottled.
	if cfg.Redis.URL != "" {
		kv, err := redis.NewKV(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, continuing without cache and rate limits",
				"error", err)
		} else {
			ttl := time.Duration(cfg.Redis.CacheTTLSeconds) * time.Second
			app.listCache = redis.NewTaskListCache(kv, ttl, logger)
			app.rateLimiter = redis.NewFixedWindowLimiter(kv, cfg.RateLimit, logger)
			logger.Info("redis cache and rate limiter initialized",
				"cache_ttl_seconds", cfg.Redis.CacheTTLSeconds,
				"per_hour", cfg.RateLimit.PerHour,
				"per_day", cfg.RateLimit.PerDay)
		}
	}

	var listCache service.ListCache
	if app.listCache != nil {
		listCache = app.listCache
	}
	app.taskService = service.NewTaskService(app.taskStore, listCache, logger)

	logger.Info("application initialized successfully")
	return app, nil
}

// seedAdminUser creates the configured admin account if it does not exist
// yet. Seeding is skipped entirely when the admin config is absent.
func (app *application) seedAdminUser(ctx context.Context) error {
	if app.config.Admin.Email == "" || app.config.Admin.Password == "" {
		return nil
	}

	_, err := app.userStore.GetByEmail(ctx, app.config.Admin.Email)
	if err == nil {
		app.logger.Debug("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	admin, err := domain.NewUser(app.config.Admin.Email, app.config.Admin.Password, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("invalid admin credentials in configuration: %w", err)
	}

	if err := app.userStore.Create(ctx, admin); err != nil {
		// A concurrent instance may have seeded it first.
		if errors.Is(err, store.ErrEmailExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	app.logger.Info("admin user seeded", "user_id", admin.ID.String())
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
