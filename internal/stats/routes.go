package stats

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// MountRoutes registers the statistics endpoints onto the router. Export
// downloads walk the whole findings table, so they carry their own tighter
// rate limit.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.handleUsers)
	r.Get("/findings", h.handleFindings)
	r.Get("/department", h.handleDepartments)
	r.Get("/faculty", h.handleFaculties)
	r.Get("/budget/year", h.handleBudget)
	r.Get("/findings/monthly", h.handleMonthly)
	r.Get("/findings/yearly", h.handleYearly)

	r.Group(func(r chi.Router) {
		r.Use(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		r.Get("/export/excel", h.handleExportExcel)
		r.Get("/export/pdf", h.handleExportPDF)
	})
}
