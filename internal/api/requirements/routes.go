package requirements

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers requirement routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/requirements", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Get("/{id}/brief", h.GetBrief)
	})
}
