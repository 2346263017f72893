package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/ghlaw/taskdesk/internal/api"
	apiMiddleware "github.com/ghlaw/taskdesk/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	if limit := app.config.Server.RateLimitPerMinute; limit > 0 {
		r.Use(httprate.LimitByIP(limit, time.Minute))
	}

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.auditStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(
		app.taskStore,
		app.auditStore,
		app.notifier,
		app.logger,
	)
	statsHandler := api.NewStatsHandler(app.statsStore, app.logger)
	healthHandler := api.NewHealthHandler(app.db)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Task reads (public)
		r.Get("/tasks", taskHandler.GetAll)
		r.Get("/tasks/{id}", taskHandler.GetByID)
		r.Get("/tasks/assignee/{assignee}", taskHandler.GetByAssignee)
		r.Get("/tasks/status/{status}", taskHandler.GetByStatus)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task mutations
			r.Post("/tasks", taskHandler.Create)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)

			// Aggregate statistics
			r.Get("/stats", statsHandler.Overall)
			r.Get("/stats/user/{name}", statsHandler.ByAssignee)
		})
	})

	// Probes
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	return r
}
