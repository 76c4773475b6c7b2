package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/sessions", func(r chi.Router) {
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/messages", h.SubmitMessage)
		r.Patch("/{id}/draft", h.UpdateDraft)
		r.Post("/{id}/submit", h.SubmitDraft)
		r.Post("/{id}/images", h.AttachImage)
		r.Delete("/{id}/images/{image_id}", h.RemoveImage)
	})
}
