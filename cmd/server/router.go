package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/primetrade/taskboard-api/internal/api"
	apiMiddleware "github.com/primetrade/taskboard-api/internal/api/middleware"
	"github.com/primetrade/taskboard-api/internal/domain"
)

// serverVersion is reported by the API info endpoint.
const serverVersion = "1.0.0"

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	if app.rateLimiter != nil {
		r.Use(apiMiddleware.RateLimitMiddleware(app.rateLimiter))
	}

	// Create API handlers using the application's services
	systemHandler := api.NewSystemHandler(serverVersion)
	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordVerifier,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	adminHandler := api.NewAdminHandler(app.taskService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", systemHandler.Info)

		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Task endpoints (authenticated)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/tasks", taskHandler.CreateTask)
			r.Get("/tasks", taskHandler.ListTasks)
			r.Get("/tasks/{id}", taskHandler.GetTask)
			r.Put("/tasks/{id}", taskHandler.UpdateTask)
			r.Delete("/tasks/{id}", taskHandler.DeleteTask)
		})

		// Admin endpoints (authenticated, admin role required)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(authMiddleware.RequireRole(domain.RoleAdmin))

			r.Get("/admin/tasks", adminHandler.ListAllTasks)
			r.Delete("/admin/tasks/{id}", adminHandler.DeleteAnyTask)
		})
	})

	// Health check endpoint
	r.Get("/health", systemHandler.Health)

	return r
}
