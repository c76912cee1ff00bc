package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Roles understood by the API.
const (
	RoleAdmin   = "admin"
	RoleCompany = "company"
)

// SessionState tracks where a session is in its login → active → logout lifecycle.
type SessionState string

const (
	SessionActive    SessionState = "active"
	SessionLoggedOut SessionState = "logged_out"
)

// Session is the authenticated caller, derived from a verified token on every request.
type Session struct {
	TokenID   string       `json:"-"`
	UserID    uuid.UUID    `json:"user_id"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	ExpiresAt time.Time    `json:"expires_at"`
	State     SessionState `json:"state"`
}

// NewSession builds an active session from verified claims.
func NewSession(claims *Claims) (*Session, error) {
	if claims == nil {
		return nil, fmt.Errorf("claims are required")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid subject: %w", err)
	}
	s := &Session{
		TokenID: claims.ID,
		UserID:  userID,
		Email:   claims.Email,
		Role:    claims.Role,
		State:   SessionActive,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Active reports whether the session may still be used.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.State == SessionActive && now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the session holds the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
