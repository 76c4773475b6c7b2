package designers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers designer directory routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/designers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/me", h.GetMine)
	})
}
