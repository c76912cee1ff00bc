package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	authpkg "github.com/asbhive/directory/api/internal/auth"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidAuthorization = errors.New("invalid authorization header")
	errTokenRevoked         = errors.New("token has been revoked")
)

// JWT validates bearer tokens and stores the resulting session in the request context.
func JWT(manager *authpkg.JWTManager, revocations *authpkg.Revocations) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := bearerToken(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}

			session, err := sessionFromToken(manager, revocations, token)
			if err != nil {
				if errors.Is(err, errTokenRevoked) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "session has ended"})
				}
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			setSession(c, session)
			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", errMissingAuthorization
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", errInvalidAuthorization
	}
	return strings.TrimSpace(parts[1]), nil
}

func sessionFromToken(manager *authpkg.JWTManager, revocations *authpkg.Revocations, token string) (*authpkg.Session, error) {
	claims, err := manager.ParseToken(token)
	if err != nil {
		return nil, err
	}
	if revocations != nil && revocations.IsRevoked(claims.ID) {
		return nil, errTokenRevoked
	}
	return authpkg.NewSession(claims)
}
