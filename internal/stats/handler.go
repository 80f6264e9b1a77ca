package stats

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/triup-dev/triup-admin/internal/findings"
	"github.com/triup-dev/triup-admin/internal/platform/httpx"
	"github.com/triup-dev/triup-admin/internal/stats/export"
)

// ServicePort is the aggregation contract consumed by the handler.
type ServicePort interface {
	Users(ctx context.Context) (UsersSummary, error)
	Findings(ctx context.Context) (FindingsSummary, error)
	Departments(ctx context.Context) ([]DepartmentCount, error)
	Faculties(ctx context.Context) ([]FacultyCount, error)
	BudgetByYear(ctx context.Context) ([]YearBudget, error)
	Monthly(ctx context.Context) ([]MonthCount, error)
	Yearly(ctx context.Context) ([]YearCount, error)
}

// FindingSource supplies the rows for export downloads.
type FindingSource interface {
	ExportRows(ctx context.Context) ([]findings.ExportRow, error)
}

// ExportRecorder counts export attempts; the Prometheus metrics satisfy it.
type ExportRecorder interface {
	ObserveExport(format, outcome string)
}

// Handler serves the statistics and export endpoints.
type Handler struct {
	logger   *slog.Logger
	service  ServicePort
	source   FindingSource
	recorder ExportRecorder
}

// NewHandler constructs the statistics HTTP handler. recorder may be nil.
func NewHandler(logger *slog.Logger, service ServicePort, source FindingSource, recorder ExportRecorder) *Handler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Handler{logger: logger, service: service, source: source, recorder: recorder}
}

type noopRecorder struct{}

func (noopRecorder) ObserveExport(string, string) {}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Users(r.Context())
	if err != nil {
		h.logger.Error("user statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) handleFindings(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Findings(r.Context())
	if err != nil {
		h.logger.Error("finding statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, summary)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Departments(r.Context())
	if err != nil {
		h.logger.Error("department statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, counts)
}

func (h *Handler) handleFaculties(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Faculties(r.Context())
	if err != nil {
		h.logger.Error("faculty statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, counts)
}

func (h *Handler) handleBudget(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.service.BudgetByYear(r.Context())
	if err != nil {
		h.logger.Error("budget statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, budgets)
}

func (h *Handler) handleMonthly(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Monthly(r.Context())
	if err != nil {
		h.logger.Error("monthly statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, counts)
}

func (h *Handler) handleYearly(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Yearly(r.Context())
	if err != nil {
		h.logger.Error("yearly statistics", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.OK(w, counts)
}

func (h *Handler) handleExportExcel(w http.ResponseWriter, r *http.Request) {
	rows, err := h.source.ExportRows(r.Context())
	if err != nil {
		h.recorder.ObserveExport("excel", "error")
		h.logger.Error("excel export query", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename=findings.xlsx`)
	if err := export.WriteExcel(w, rows); err != nil {
		// Headers are already gone; all we can do is abort the stream.
		h.recorder.ObserveExport("excel", "error")
		h.logger.Error("excel export write", slog.Any("error", err))
		return
	}
	h.recorder.ObserveExport("excel", "success")
}

func (h *Handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	rows, err := h.source.ExportRows(r.Context())
	if err != nil {
		h.recorder.ObserveExport("pdf", "error")
		h.logger.Error("pdf export query", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename=findings.pdf`)
	if err := export.WritePDF(w, rows); err != nil {
		h.recorder.ObserveExport("pdf", "error")
		h.logger.Error("pdf export write", slog.Any("error", err))
		return
	}
	h.recorder.ObserveExport("pdf", "success")
}
