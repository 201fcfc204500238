package api

import (
	"errors"
	"time"

	"KIndex/internal/domain/models"
	"KIndex/internal/service/ratelimit"
	"KIndex/internal/usecase"
	xhttp "KIndex/pkg/http"
	"KIndex/pkg/http/middleware"
	xlogger "KIndex/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DashboardEchoHandler exposes the dashboard, futures, and session state
// endpoints.
type DashboardEchoHandler struct {
	logger    *xlogger.Logger
	dashboard *usecase.DashboardUseCase
	futures   *usecase.FuturesUseCase
	countdown *usecase.Countdown
	rl        *ratelimit.Limiter
}

func NewDashboardEchoHandler(
	logger *xlogger.Logger,
	dashboard *usecase.DashboardUseCase,
	futures *usecase.FuturesUseCase,
	countdown *usecase.Countdown,
) *DashboardEchoHandler {
	return &DashboardEchoHandler{
		logger:    logger,
		dashboard: dashboard,
		futures:   futures,
		countdown: countdown,
		rl:        ratelimit.New(),
	}
}

func (h *DashboardEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", middleware.RateLimit(h.rl, 10, 5))
	g.GET("/dashboard", h.Dashboard)
	g.GET("/futures", h.Futures)
	g.GET("/session", h.Session)

	e.GET("/ws/session", h.SessionWS)
}

func (h *DashboardEchoHandler) Dashboard(c echo.Context) error {
	req := &models.DashboardRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.dashboard.Snapshot(c.Request().Context(), req.Date)
	if err != nil {
		return h.searchError(c, "dashboard", err)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *DashboardEchoHandler) Futures(c echo.Context) error {
	req := &models.FuturesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	snap, err := h.futures.Snapshot(c.Request().Context(), req.Date)
	if err != nil {
		return h.searchError(c, "futures", err)
	}
	return xhttp.SuccessResponse(c, snap)
}

func (h *DashboardEchoHandler) Session(c echo.Context) error {
	tick, err := h.countdown.Tick()
	if err != nil {
		h.logger.Error("session state error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, tick)
}

// searchError maps a basis-date search failure onto an HTTP status: an
// exhausted search is a 404 with the tried candidates, a malformed date a
// 400, anything else a 500.
func (h *DashboardEchoHandler) searchError(c echo.Context, op string, err error) error {
	var noData *usecase.NoDataError
	if errors.As(err, &noData) {
		h.logger.Warn("basis date search exhausted",
			xlogger.String("op", op),
			xlogger.String("requested", noData.Requested),
			xlogger.Strings("tried", noData.Tried),
		)
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("no data at or before %s", noData.Requested).
			WithParam("tried", noData.Tried).
			WithError(err))
	}

	var pe *time.ParseError
	if errors.As(err, &pe) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	}

	h.logger.Error(op+" usecase error", xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.InternalError(err.Error()).WithError(err))
}
