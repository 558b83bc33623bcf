package middleware

import (
	"time"

	xlogger "CovidPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs HTTP requests at debug level, 5xx at error.
func RequestLogging(logger *xlogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []xlogger.Field{
				xlogger.String("method", req.Method),
				xlogger.String("uri", req.RequestURI),
				xlogger.String("remote", req.RemoteAddr),
				xlogger.Int("status", c.Response().Status),
				xlogger.Duration("latency", time.Since(start)),
			}
			if c.Response().Status >= 500 {
				logger.Error("http request failed", append(fields, xlogger.Error(err))...)
			} else {
				logger.Debug("http request", fields...)
			}
			return nil
		}
	}
}
