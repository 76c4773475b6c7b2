package reports

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers reporting routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/reports", func(r chi.Router) {
		r.Get("/designer-stats", h.GetDesignerStats)
		r.Get("/designer-stats/export", h.ExportStats)
		r.Get("/export-excel", h.ExportExcel)
	})
}
