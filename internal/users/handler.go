package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triup-dev/triup-admin/internal/platform/httpx"
)

// ServicePort is the business contract consumed by the handler.
type ServicePort interface {
	List(ctx context.Context) ([]AccountView, error)
	Get(ctx context.Context, uuid string) (AccountView, error)
	RoleHistory(ctx context.Context, uuid string) ([]RoleLogView, error)
	ChangeRole(ctx context.Context, uuid string, req UpdateRoleRequest) (Account, error)
}

// Handler serves the admin user endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs the users HTTP handler.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, views)
}

func (h *Handler) handleShow(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")
	view, err := h.service.Get(r.Context(), uuid)
	if err != nil {
		h.logger.Error("get user", slog.String("uuid", uuid), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, view)
}

func (h *Handler) handleRoleLog(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")
	history, err := h.service.RoleHistory(r.Context(), uuid)
	if err != nil {
		h.logger.Error("role history", slog.String("uuid", uuid), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, history)
}

func (h *Handler) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	uuid := chi.URLParam(r, "uuid")
	var req UpdateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := h.service.ChangeRole(r.Context(), uuid, req)
	if err != nil {
		h.logger.Warn("change role rejected", slog.String("uuid", uuid), slog.Int("roles_id", req.RolesID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, updated)
}
