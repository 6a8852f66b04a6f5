package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/orbit-app/orbit-api/internal/api"
	apiMiddleware "github.com/orbit-app/orbit-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordHasher,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	categoryHandler := api.NewCategoryHandler(app.categoryService, app.logger)
	userHandler := api.NewUserHandler(app.userStore, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	adminMiddleware := apiMiddleware.NewAdminMiddleware(app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/signup", authHandler.Signup)
		r.Post("/auth/signin", authHandler.Signin)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Task endpoints. The bucket routes must be declared as
			// literals so chi matches them ahead of the {id} parameter.
			r.Post("/tasks", taskHandler.Create)
			r.Get("/tasks", taskHandler.List)
			r.Get("/tasks/today", taskHandler.ForToday)
			r.Get("/tasks/week", taskHandler.ForWeek)
			r.Get("/tasks/month", taskHandler.ForMonth)
			r.Get("/tasks/completed", taskHandler.Completed)
			r.Get("/tasks/{id}", taskHandler.GetByID)
			r.Put("/tasks/{id}", taskHandler.Update)
			r.Delete("/tasks/{id}", taskHandler.Delete)
			r.Patch("/tasks/{id}/complete", taskHandler.MarkCompleted)
			r.Patch("/tasks/{id}/incomplete", taskHandler.MarkIncomplete)

			// Category endpoints
			r.Post("/categories", categoryHandler.Create)
			r.Get("/categories", categoryHandler.List)
			r.Get("/categories/{id}", categoryHandler.GetByID)
			r.Put("/categories/{id}", categoryHandler.Update)
			r.Delete("/categories/{id}", categoryHandler.Delete)

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(adminMiddleware.RequireAdmin)
				r.Get("/users", userHandler.List)
			})
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
