package api

import (
	"errors"
	"time"

	"CovidPulse/internal/domain/models"
	drepo "CovidPulse/internal/domain/repository"
	"CovidPulse/internal/service/ratelimit"
	xhttp "CovidPulse/pkg/http"
	xlogger "CovidPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StateReporter exposes the tracker phase.
type StateReporter interface {
	State() models.TrackerState
}

// StatusEchoHandler serves the read-only status endpoints.
type StatusEchoHandler struct {
	logger  *xlogger.Logger
	tracker StateReporter
	store   drepo.SnapshotStore
	limiter *ratelimit.Limiter
	started time.Time
}

// NewStatusEchoHandler creates the handler. A nil limiter disables rate
// limiting of /api routes.
func NewStatusEchoHandler(logger *xlogger.Logger, tracker StateReporter, store drepo.SnapshotStore, limiter *ratelimit.Limiter) *StatusEchoHandler {
	return &StatusEchoHandler{logger: logger, tracker: tracker, store: store, limiter: limiter, started: time.Now()}
}

func (h *StatusEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	g := e.Group("/api")
	if h.limiter != nil {
		g.Use(RateLimit(h.limiter))
	}
	g.GET("/snapshot", h.Snapshot)
}

type healthResponse struct {
	State  string `json:"state"`
	Uptime string `json:"uptime"`
}

func (h *StatusEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, healthResponse{
		State:  h.tracker.State().String(),
		Uptime: time.Since(h.started).Truncate(time.Second).String(),
	})
}

func (h *StatusEchoHandler) Snapshot(c echo.Context) error {
	snap, err := h.store.Latest(c.Request().Context())
	if err != nil {
		if errors.Is(err, models.ErrSnapshotNotFound) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundError("no completed cycle yet").WithError(err))
		}
		h.logger.Error("snapshot lookup failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("snapshot unavailable").WithError(err))
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-cache")
	return xhttp.SuccessResponse(c, snap)
}
