package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/auth"
)

// Context keys used to store authentication metadata.
const (
	ContextKeySession   = "session"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	ContextKeyTrigger   = "trigger"
)

// Trigger sources recorded for the news batch endpoint.
const (
	TriggerAdmin     = "admin"
	TriggerScheduler = "scheduler"
)

// SessionFromContext returns the authenticated session, or nil for anonymous requests.
func SessionFromContext(c echo.Context) *auth.Session {
	session, _ := c.Get(ContextKeySession).(*auth.Session)
	return session
}

func setSession(c echo.Context, session *auth.Session) {
	c.Set(ContextKeySession, session)
	c.Set(ContextKeyUserID, session.UserID.String())
	c.Set(ContextKeyUserEmail, session.Email)
	c.Set(ContextKeyUserRole, session.Role)
}
