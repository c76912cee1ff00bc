package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"google.golang.org/api/idtoken"

	authpkg "github.com/asbhive/directory/api/internal/auth"
)

// IDTokenValidator verifies a Google-signed OIDC token for the given audience.
type IDTokenValidator func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// TriggerAuthConfig configures who may start the news batch.
type TriggerAuthConfig struct {
	JWT         *authpkg.JWTManager
	Revocations *authpkg.Revocations
	// Audience enables scheduler tokens when set.
	Audience string
	// Validate defaults to idtoken.Validate.
	Validate IDTokenValidator
	Logger   zerolog.Logger
}

// TriggerAuth admits an admin session or, when an audience is configured, a scheduler OIDC token.
func TriggerAuth(cfg TriggerAuthConfig) echo.MiddlewareFunc {
	validate := cfg.Validate
	if validate == nil {
		validate = idtoken.Validate
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			if session, err := sessionFromToken(cfg.JWT, cfg.Revocations, token); err == nil {
				if !session.IsAdmin() {
					return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
				}
				setSession(c, session)
				c.Set(ContextKeyTrigger, TriggerAdmin)
				return next(c)
			}

			if cfg.Audience == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			payload, err := validate(c.Request().Context(), token, cfg.Audience)
			if err != nil {
				cfg.Logger.Warn().Err(err).Str("request_id", RequestIDFromContext(c)).Msg("scheduler token rejected")
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(ContextKeyTrigger, TriggerScheduler)
			c.Set(ContextKeyUserEmail, payloadEmail(payload))
			return next(c)
		}
	}
}

func payloadEmail(payload *idtoken.Payload) string {
	if payload == nil {
		return ""
	}
	if email, ok := payload.Claims["email"].(string); ok {
		return email
	}
	return payload.Subject
}
