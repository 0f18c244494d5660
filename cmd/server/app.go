package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/interna-hq/interna-api/internal/config"
	"github.com/interna-hq/interna-api/internal/generation"
	"github.com/interna-hq/interna-api/internal/mailer"
	"github.com/interna-hq/interna-api/internal/platform/gemini"
	"github.com/interna-hq/interna-api/internal/platform/postgres"
	"github.com/interna-hq/interna-api/internal/platform/redisotp"
	"github.com/interna-hq/interna-api/internal/service/auth"
	"github.com/interna-hq/interna-api/internal/service/enrollment"
	"github.com/interna-hq/interna-api/internal/service/projects"
	"github.com/interna-hq/interna-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB
	redis  *redis.Client

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	profileStore    store.ProfileStore
	progressStore   store.ProgressStore
	simulationStore store.SimulationStore
	challengeStore  store.ChallengeStore

	// Service interfaces
	jwtService        auth.JWTService
	passwordVerifier  auth.PasswordVerifier
	generator         generation.Generator
	mailer            mailer.Mailer
	asyncMailer       *mailer.AsyncMailer
	enrollmentService *enrollment.Service
	projectsService   *projects.Service
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and database
// connection must be established before application initialization.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize postgres stores
	bcryptCost := cfg.Auth.BcryptCost
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	app.userStore = postgres.NewPostgresUserStore(db, bcryptCost, logger)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.simulationStore = postgres.NewPostgresSimulationStore(db, logger)

	// Initialize the redis-backed challenge store
	app.redis = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := app.redis.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.challengeStore = redisotp.NewChallengeStore(app.redis, redisotp.Config{
		CodeTTL:        time.Duration(cfg.Enrollment.CodeTTLMinutes) * time.Minute,
		ResendCooldown: time.Duration(cfg.Enrollment.ResendCooldownSeconds) * time.Second,
		MaxAttempts:    cfg.Enrollment.MaxVerifyAttempts,
	}, logger)
	logger.Info("Challenge store initialized",
		"code_ttl_minutes", cfg.Enrollment.CodeTTLMinutes,
		"resend_cooldown_seconds", cfg.Enrollment.ResendCooldownSeconds)

	// Initialize the mailer; without SMTP settings codes are only logged,
	// which is acceptable for local development only. Deliveries run on a
	// background worker pool so signup responses never wait on SMTP.
	var delivery mailer.Mailer
	if cfg.SMTP.Host != "" {
		delivery = mailer.NewSMTPMailer(cfg.SMTP)
		logger.Info("SMTP mailer initialized", "smtp_port", cfg.SMTP.Port)
	} else {
		delivery = mailer.NewLogMailer(logger)
		logger.Warn("SMTP not configured; verification codes will be logged instead of emailed")
	}
	app.asyncMailer = mailer.NewAsyncMailer(delivery, mailer.AsyncConfig{}, logger)
	app.mailer = app.asyncMailer

	// Create the LLM generator service
	app.generator, err = gemini.NewGenerator(
		ctx,
		logger.With("component", "llm_generator"),
		cfg.LLM,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized successfully")

	// Initialize the enrollment state machine
	app.enrollmentService = enrollment.NewService(
		db,
		app.userStore,
		app.profileStore,
		app.challengeStore,
		app.mailer,
		logger,
	)

	// Initialize the projects service
	app.projectsService = projects.NewService(
		app.progressStore,
		app.simulationStore,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
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
	if app.asyncMailer != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		app.asyncMailer.Stop(stopCtx)
		stopCancel()
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
