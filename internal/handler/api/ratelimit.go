package api

import (
	"net/http"

	"CovidPulse/internal/service/ratelimit"
	xhttp "CovidPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// RateLimit rejects clients that exceed the limiter's budget, keyed by IP.
func RateLimit(l *ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return xhttp.AppErrorResponse(c,
					xhttp.NewAppError("ERR_RATE_LIMITED", "too many requests", http.StatusTooManyRequests))
			}
			return next(c)
		}
	}
}
