package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/interna-hq/interna-api/internal/api"
	apiMiddleware "github.com/interna-hq/interna-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // trace IDs for error correlation

	// Create API handlers using the application's services
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.profileStore,
		app.jwtService,
		app.passwordVerifier,
		app.enrollmentService,
		app.logger,
	)
	enrollmentHandler := api.NewEnrollmentHandler(app.enrollmentService, app.logger)
	projectsHandler := api.NewProjectsHandler(app.projectsService, app.logger)
	aiHandler := api.NewAIHandler(app.generator, app.simulationStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Verification endpoints are keyed by email and reachable before a
		// token exists.
		r.Post("/enrollment/verify", enrollmentHandler.VerifyEmail)
		r.Post("/enrollment/resend", enrollmentHandler.ResendCode)
		r.Get("/enrollment/catalogs", enrollmentHandler.Catalogs)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/session", authHandler.Session)

			// Enrollment state machine
			r.Get("/enrollment/state", enrollmentHandler.State)
			r.Post("/enrollment/onboarding", enrollmentHandler.CompleteOnboarding)

			// Project dashboard
			r.Get("/projects", projectsHandler.List)
			r.Post("/projects/tasks/{taskID}/enter", projectsHandler.EnterTask)
			r.Post("/projects/simulations", projectsHandler.CreateSimulation)
			r.Post("/projects/simulations/{simulationID}/enter", projectsHandler.TouchSimulation)

			// AI endpoints
			r.Post("/ai/chat", aiHandler.Chat)
			r.Post("/ai/review", aiHandler.Review)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
