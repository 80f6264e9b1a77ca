package users

import (
	"github.com/go-chi/chi/v5"
)

// MountRoutes registers the admin user endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.handleList)
	r.Get("/users/{uuid}", h.handleShow)
	r.Get("/users/{uuid}/role-log", h.handleRoleLog)
	r.Put("/users/{uuid}/role", h.handleUpdateRole)
}
