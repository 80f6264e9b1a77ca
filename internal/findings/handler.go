package findings

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/triup-dev/triup-admin/internal/platform/httpx"
)

// ServicePort is the business contract consumed by the handler.
type ServicePort interface {
	List(ctx context.Context) ([]Finding, error)
	Detail(ctx context.Context, id int64) (Detail, error)
}

// Handler serves the finding endpoints.
type Handler struct {
	logger  *slog.Logger
	service ServicePort
}

// NewHandler constructs the findings HTTP handler.
func NewHandler(logger *slog.Logger, service ServicePort) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the finding endpoints onto the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleDetail)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list findings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, rows)
}

func (h *Handler) handleDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid finding id")
		return
	}
	detail, err := h.service.Detail(r.Context(), id)
	if err != nil {
		h.logger.Error("finding detail", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, detail)
}
