package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"KIndex/internal/calendar"
	"KIndex/internal/domain/models"
	"KIndex/internal/usecase"
	xhttp "KIndex/pkg/http"
	xlogger "KIndex/pkg/logger"

	"github.com/labstack/echo/v4"
)

type emptyIndexSource struct{}

func (emptyIndexSource) FetchSeries(ctx context.Context, index, basisDate string) (models.Series, *models.IndexQuote, error) {
	return models.Series{Index: index}, nil, nil
}

func newTestHandler(t *testing.T) *DashboardEchoHandler {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "console", Output: "stdout"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	cal, err := calendar.New("09:00", "15:30", nil)
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	dash := usecase.NewDashboardUseCase(emptyIndexSource{}, cal, []string{"KOSPI"}, 3, l)
	return NewDashboardEchoHandler(l, dash, nil, usecase.NewCountdown(cal))
}

func doDashboard(t *testing.T, h *DashboardEchoHandler, query string) xhttp.APIResponse {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard"+query, nil)
	rec := httptest.NewRecorder()
	if err := h.Dashboard(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp
}

func TestDashboardMalformedDateIsBadRequest(t *testing.T) {
	h := newTestHandler(t)
	// Passes the length/numeric validation but is not a real date.
	resp := doDashboard(t, h, "?date=20269999")
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("expected envelope status 400, got %d", resp.Status)
	}
}

func TestDashboardExhaustedSearchIsNotFound(t *testing.T) {
	h := newTestHandler(t)
	resp := doDashboard(t, h, "?date=20260105")
	if resp.Status != http.StatusNotFound {
		t.Fatalf("expected envelope status 404, got %d", resp.Status)
	}
}

func TestSessionReturnsTick(t *testing.T) {
	h := newTestHandler(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()
	if err := h.Session(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	var resp xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if resp.Status != http.StatusOK || resp.Data == nil {
		t.Fatalf("expected a tick payload, got %+v", resp)
	}
}
