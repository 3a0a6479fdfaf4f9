package api

import (
	"context"
	"time"

	"BreadthPulse/internal/domain/models"
	"BreadthPulse/internal/usecase"
	xhttp "BreadthPulse/pkg/http"
	xlogger "BreadthPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// BreadthEchoHandler exposes the analytics and tracking endpoints.
type BreadthEchoHandler struct {
	logger   *xlogger.Logger
	intel    *usecase.Intelligence
	tracker  *usecase.Tracker
	backfill *usecase.Backfill
}

func NewBreadthEchoHandler(
	logger *xlogger.Logger,
	intel *usecase.Intelligence,
	tracker *usecase.Tracker,
	backfill *usecase.Backfill,
) *BreadthEchoHandler {
	return &BreadthEchoHandler{logger: logger, intel: intel, tracker: tracker, backfill: backfill}
}

func (h *BreadthEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/score", h.Score)
	g.GET("/context", h.Context)
	g.GET("/forecast", h.Forecast)
	g.GET("/divergence", h.Divergence)
	g.GET("/sectors", h.Sectors)
	g.GET("/risk", h.Risk)
	g.GET("/report", h.Report)
	g.GET("/history", h.History)
	g.POST("/track", h.Track)
	g.POST("/backfill", h.Backfill)
}

// unavailable is the uniform body for sections whose backing history is
// still too short to compute.
func unavailable(reason string) map[string]interface{} {
	return map[string]interface{}{
		"available": false,
		"reason":    reason,
	}
}

func (h *BreadthEchoHandler) Score(c echo.Context) error {
	score, err := h.intel.Score(c.Request().Context())
	if err != nil {
		h.logger.Error("score usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if score == nil {
		return xhttp.SuccessResponse(c, unavailable("need at least 5 days of history"))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	return xhttp.SuccessResponse(c, score)
}

func (h *BreadthEchoHandler) Context(c echo.Context) error {
	statCtx, err := h.intel.Context(c.Request().Context())
	if err != nil {
		h.logger.Error("context usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if statCtx == nil {
		return xhttp.SuccessResponse(c, unavailable("need at least 30 days of history"))
	}
	return xhttp.SuccessResponse(c, statCtx)
}

func (h *BreadthEchoHandler) Forecast(c echo.Context) error {
	fc, err := h.intel.Forecast(c.Request().Context())
	if err != nil {
		h.logger.Error("forecast usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if fc == nil {
		return xhttp.SuccessResponse(c, unavailable("need at least 10 days of history"))
	}
	return xhttp.SuccessResponse(c, fc)
}

func (h *BreadthEchoHandler) Divergence(c echo.Context) error {
	div, ok, err := h.intel.Divergence(c.Request().Context())
	if err != nil {
		h.logger.Error("divergence usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if !ok {
		return xhttp.SuccessResponse(c, unavailable("need at least 3 days of history"))
	}
	if div == nil {
		return xhttp.SuccessResponse(c, map[string]interface{}{"detected": false})
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"detected": true, "divergence": div})
}

func (h *BreadthEchoHandler) Sectors(c echo.Context) error {
	req := &models.SectorSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	signals, err := h.intel.SectorSignals(c.Request().Context())
	if err != nil {
		h.logger.Error("sectors usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if signals == nil {
		return xhttp.SuccessResponse(c, unavailable("need at least 7 days of sector history"))
	}
	if req.Limit > 0 && req.Limit < len(signals) {
		signals = signals[:req.Limit]
	}
	return xhttp.ListResponse(c, signals, int64(len(signals)))
}

func (h *BreadthEchoHandler) Risk(c echo.Context) error {
	risk, err := h.intel.Risk(c.Request().Context())
	if err != nil {
		h.logger.Error("risk usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if risk == nil {
		return xhttp.SuccessResponse(c, unavailable("need at least 5 sectors on the latest day"))
	}
	return xhttp.SuccessResponse(c, risk)
}

func (h *BreadthEchoHandler) Report(c echo.Context) error {
	report, err := h.intel.Report(c.Request().Context())
	if err != nil {
		h.logger.Error("report usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *BreadthEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if req.Sector != "" {
		series, err := h.intel.SectorHistory(c.Request().Context(), req.Sector, req.Days)
		if err != nil {
			h.logger.Error("history usecase error", xlogger.Error(err))
			return xhttp.AppErrorResponse(c, err)
		}
		return xhttp.ListResponse(c, series, int64(len(series)))
	}

	series, err := h.intel.History(c.Request().Context(), req.Days)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, series, int64(len(series)))
}

// Track runs a full tracking sweep for the current session. The sweep
// can take minutes over a 500-stock universe, so it runs detached and
// the endpoint acknowledges immediately.
func (h *BreadthEchoHandler) Track(c echo.Context) error {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if err := h.tracker.TrackToday(ctx); err != nil {
			h.logger.Error("tracking run failed", xlogger.Error(err))
			return
		}
		h.intel.Invalidate(ctx)
	}()
	return xhttp.SuccessResponse(c, map[string]interface{}{"started": true})
}

func (h *BreadthEchoHandler) Backfill(c echo.Context) error {
	req := &models.BackfillRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	queued, err := h.backfill.Enqueue(c.Request().Context(), time.Now(), req.Days)
	if err != nil {
		h.logger.Error("backfill enqueue error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{"queued": queued})
}
