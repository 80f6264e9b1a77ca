package stats

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/triup-dev/triup-admin/internal/findings"
)

type stubService struct {
	users       UsersSummary
	findings    FindingsSummary
	departments []DepartmentCount
	faculties   []FacultyCount
	budgets     []YearBudget
	monthly     []MonthCount
	yearly      []YearCount
	err         error
}

func (s *stubService) Users(context.Context) (UsersSummary, error) { return s.users, s.err }

func (s *stubService) Findings(context.Context) (FindingsSummary, error) {
	return s.findings, s.err
}
func (s *stubService) Departments(context.Context) ([]DepartmentCount, error) {
	return s.departments, s.err
}
func (s *stubService) Faculties(context.Context) ([]FacultyCount, error) {
	return s.faculties, s.err
}
func (s *stubService) BudgetByYear(context.Context) ([]YearBudget, error) {
	return s.budgets, s.err
}
func (s *stubService) Monthly(context.Context) ([]MonthCount, error) { return s.monthly, s.err }

func (s *stubService) Yearly(context.Context) ([]YearCount, error) { return s.yearly, s.err }

type stubSource struct {
	rows []findings.ExportRow
	err  error
}

func (s *stubSource) ExportRows(context.Context) ([]findings.ExportRow, error) {
	return s.rows, s.err
}

type countingRecorder struct {
	observed []string
}

func (c *countingRecorder) ObserveExport(format, outcome string) {
	c.observed = append(c.observed, format+":"+outcome)
}

func newTestRouter(service ServicePort, source FindingSource, recorder ExportRecorder) chi.Router {
	handler := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), service, source, recorder)
	r := chi.NewRouter()
	r.Route("/statistics", handler.MountRoutes)
	return r
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
	return payload
}

func TestHandleUsersEnvelope(t *testing.T) {
	service := &stubService{users: UsersSummary{
		TotalUsers:  5,
		UsersByRole: []RoleCount{{RolesID: 1000, Count: 5, RoleName: "ผู้ดูแลระบบ"}},
	}}
	router := newTestRouter(service, &stubSource{}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics/users", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeEnvelope(t, rr)
	assert.Equal(t, true, payload["success"])
	data := payload["data"].(map[string]any)
	assert.Equal(t, float64(5), data["total_users"])
}

func TestHandleMonthlyEnvelope(t *testing.T) {
	monthly := make([]MonthCount, 12)
	for i := range monthly {
		monthly[i] = MonthCount{Month: i + 1}
	}
	service := &stubService{monthly: monthly}
	router := newTestRouter(service, &stubSource{}, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics/findings/monthly", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	payload := decodeEnvelope(t, rr)
	require.Len(t, payload["data"], 12)
}

func TestHandleStatisticsError(t *testing.T) {
	service := &stubService{err: errors.New("query timeout")}
	router := newTestRouter(service, &stubSource{}, nil)

	for _, path := range []string{
		"/statistics/users",
		"/statistics/findings",
		"/statistics/department",
		"/statistics/faculty",
		"/statistics/budget/year",
		"/statistics/findings/monthly",
		"/statistics/findings/yearly",
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, rr.Code, path)
		payload := decodeEnvelope(t, rr)
		assert.Equal(t, false, payload["success"], path)
	}
}

func TestHandleExportExcel(t *testing.T) {
	source := &stubSource{rows: []findings.ExportRow{
		{ReportCode: "RPT-010", TitleTH: "Alpha", TitleEN: "Alpha", Status: "approved"},
	}}
	recorder := &countingRecorder{}
	router := newTestRouter(&stubService{}, source, recorder)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics/export/excel", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=findings.xlsx", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, []string{"excel:success"}, recorder.observed)

	f, err := excelize.OpenReader(rr.Body)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Findings Report")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "RPT-010", rows[1][0])
}

func TestHandleExportPDF(t *testing.T) {
	source := &stubSource{rows: []findings.ExportRow{
		{ReportCode: "RPT-011", TitleTH: "Beta", TitleEN: "Beta", Status: "pending"},
	}}
	recorder := &countingRecorder{}
	router := newTestRouter(&stubService{}, source, recorder)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics/export/pdf", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=findings.pdf", rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF-"))
	assert.Equal(t, []string{"pdf:success"}, recorder.observed)
}

func TestHandleExportQueryError(t *testing.T) {
	source := &stubSource{err: errors.New("db down")}
	recorder := &countingRecorder{}
	router := newTestRouter(&stubService{}, source, recorder)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/statistics/export/excel", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	payload := decodeEnvelope(t, rr)
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, []string{"excel:error"}, recorder.observed)
}
