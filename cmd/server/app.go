package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghlaw/taskdesk/internal/config"
	"github.com/ghlaw/taskdesk/internal/notify"
	"github.com/ghlaw/taskdesk/internal/platform/postgres"
	"github.com/ghlaw/taskdesk/internal/service/auth"
	"github.com/ghlaw/taskdesk/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore  store.UserStore
	taskStore  store.TaskStore
	statsStore store.StatsStore
	auditStore store.AuditStore

	// Services
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	notifier         notify.Notifier

	// Set only when a mail transport is configured; nil otherwise.
	dispatcher *notify.Dispatcher
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	app.statsStore = postgres.NewPostgresStatsStore(db, logger)
	app.auditStore = postgres.NewPostgresAuditStore(db, logger)

	app.notifier = setupNotifier(app)

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupNotifier builds the notification pipeline. Without an SMTP host the
// application runs with notifications disabled rather than failing startup.
func setupNotifier(app *application) notify.Notifier {
	if app.config.SMTP.Host == "" {
		app.logger.Info("SMTP host not configured, notifications disabled")
		return notify.NopNotifier{}
	}

	sender := notify.NewSMTPSender(notify.SMTPConfig{
		Host:     app.config.SMTP.Host,
		Port:     app.config.SMTP.Port,
		Username: app.config.SMTP.Username,
		Password: app.config.SMTP.Password,
		From:     app.config.SMTP.From,
	})
	composer := notify.NewComposer(app.config.Notify.APIBaseURL)

	dispatcherConfig := notify.DefaultDispatcherConfig()
	if app.config.Notify.Workers > 0 {
		dispatcherConfig.WorkerCount = app.config.Notify.Workers
	}
	if app.config.Notify.QueueSize > 0 {
		dispatcherConfig.QueueSize = app.config.Notify.QueueSize
	}

	app.dispatcher = notify.NewDispatcher(sender, composer, dispatcherConfig, app.logger)
	app.dispatcher.Start()

	app.logger.Info("Notification dispatcher started",
		"workers", dispatcherConfig.WorkerCount,
		"queue_size", dispatcherConfig.QueueSize)
	return app.dispatcher
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
