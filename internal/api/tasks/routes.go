package tasks

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers task transition routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/tasks", func(r chi.Router) {
		r.Post("/{id}/start", h.Start)
		r.Post("/{id}/submit-review", h.SubmitReview)
		r.Post("/{id}/request-revision", h.RequestRevision)
		r.Post("/{id}/complete", h.Complete)
		r.Get("/{id}/time-logs", h.GetTimeLogs)
	})
}
