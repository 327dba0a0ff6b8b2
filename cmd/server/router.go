package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/pixgen-api/internal/api"
	apiMiddleware "github.com/phrazzld/pixgen-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	// Create a router
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	creditHandler := api.NewCreditHandler(app.tracker, app.logger)
	jobHandler := api.NewJobHandler(app.tracker, app.logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Credit metering endpoints
		r.Get("/credits", creditHandler.GetCredits)
		r.Post("/purchase-credits", creditHandler.PurchaseCredits)

		// Job endpoints
		r.Get("/queue-image-generation", jobHandler.QueueGeneration)
		r.Get("/job-status", jobHandler.JobStatus)
		r.Post("/job-status/cancel", jobHandler.CancelJob)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("OK"))
		if err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
