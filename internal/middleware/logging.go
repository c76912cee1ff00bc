package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Logging writes one structured line for each HTTP request.
func Logging(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			event := log.Info()
			switch {
			case status >= 500:
				event = log.Error().Err(err)
			case status >= 400:
				event = log.Warn()
			}
			event.
				Str("request_id", RequestIDFromContext(c)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("latency", latency).
				Msg("request")

			return err
		}
	}
}
