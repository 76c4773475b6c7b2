package api

import (
	"net/http"
	"time"

	designersapi "github.com/designdesk/session-gateway/internal/api/designers"
	"github.com/designdesk/session-gateway/internal/api/docs"
	"github.com/designdesk/session-gateway/internal/api/middleware"
	reportsapi "github.com/designdesk/session-gateway/internal/api/reports"
	requirementsapi "github.com/designdesk/session-gateway/internal/api/requirements"
	sessionapi "github.com/designdesk/session-gateway/internal/api/session"
	tasksapi "github.com/designdesk/session-gateway/internal/api/tasks"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Handlers bundles the per-resource handlers the router mounts.
type Handlers struct {
	Session      *sessionapi.Handler
	Requirements *requirementsapi.Handler
	Tasks        *tasksapi.Handler
	Designers    *designersapi.Handler
	Reports      *reportsapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Register routes
	sessionapi.RegisterRoutes(r, h.Session)
	requirementsapi.RegisterRoutes(r, h.Requirements)
	tasksapi.RegisterRoutes(r, h.Tasks)
	designersapi.RegisterRoutes(r, h.Designers)
	reportsapi.RegisterRoutes(r, h.Reports)

	return r
}
