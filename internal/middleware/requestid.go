package middleware

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// HeaderRequestID carries the request identifier in both directions.
	HeaderRequestID = "X-Request-ID"
	// HeaderCloudTrace is set by Google frontends, including scheduler calls to the news trigger.
	HeaderCloudTrace = "X-Cloud-Trace-Context"

	maxRequestIDLength = 128
)

// RequestID reuses the caller's identifier, then the Google trace id, and generates one
// otherwise. Identifiers that are too long or carry unexpected characters are replaced.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := incomingRequestID(c)
			if rid == "" {
				rid = uuid.NewString()
			}

			c.Set(ContextKeyRequestID, rid)
			c.Response().Header().Set(HeaderRequestID, rid)

			return next(c)
		}
	}
}

func incomingRequestID(c echo.Context) string {
	header := c.Request().Header
	if rid := strings.TrimSpace(header.Get(HeaderRequestID)); validRequestID(rid) {
		return rid
	}
	// trace context is "TRACE_ID/SPAN_ID;o=OPTIONS"
	trace, _, _ := strings.Cut(header.Get(HeaderCloudTrace), "/")
	if trace = strings.TrimSpace(trace); validRequestID(trace) {
		return trace
	}
	return ""
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLength {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string {
	if val, ok := c.Get(ContextKeyRequestID).(string); ok {
		return val
	}
	return ""
}
