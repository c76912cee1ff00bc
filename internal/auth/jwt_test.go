package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestJWTManager_GenerateAndParse(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	subject := uuid.NewString()
	token, issued, err := manager.GenerateToken(subject, "user@example.com", RoleAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issued.ID == "" {
		t.Fatalf("expected token id")
	}

	claims, err := manager.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.Subject != subject || claims.Email != "user@example.com" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ID != issued.ID {
		t.Fatalf("expected token id to round-trip")
	}

	if _, err := manager.ParseToken(token + "tampered"); err == nil {
		t.Fatalf("expected parse error for tampered token")
	}

	_, second, _ := manager.GenerateToken(subject, "user@example.com", RoleAdmin)
	if second.ID == issued.ID {
		t.Fatalf("expected unique token ids")
	}
}

func TestJWTManager_EmptySecret(t *testing.T) {
	manager := NewJWTManager("", time.Hour)
	if _, _, err := manager.GenerateToken("user", "user@example.com", RoleCompany); err == nil {
		t.Fatalf("expected error when secret is empty")
	}
}

func TestJWTManager_Expired(t *testing.T) {
	manager := NewJWTManager("secret", time.Minute)
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := manager.GenerateToken(uuid.NewString(), "user@example.com", RoleCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := manager.ParseToken(token); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestNewSession(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour)
	subject := uuid.New()
	_, claims, err := manager.GenerateToken(subject.String(), "co@example.my", RoleCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	session, err := NewSession(claims)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if session.UserID != subject || session.State != SessionActive || session.TokenID != claims.ID {
		t.Fatalf("unexpected session: %+v", session)
	}
	if !session.Active(time.Now()) || session.Active(time.Now().Add(2*time.Hour)) {
		t.Fatalf("unexpected activity window")
	}
	if session.IsAdmin() {
		t.Fatalf("company session must not be admin")
	}

	session.State = SessionLoggedOut
	if session.Active(time.Now()) {
		t.Fatalf("logged out session must be inactive")
	}

	claims.Subject = "not-a-uuid"
	if _, err := NewSession(claims); err == nil {
		t.Fatalf("expected error for invalid subject")
	}
}

func TestRevocations(t *testing.T) {
	now := time.Now()
	r := NewRevocations()
	r.now = func() time.Time { return now }

	r.Revoke("", now.Add(time.Hour))
	r.Revoke("token-1", now.Add(time.Hour))
	r.Revoke("token-2", now.Add(time.Minute))

	if !r.IsRevoked("token-1") || r.IsRevoked("unknown") {
		t.Fatalf("unexpected revocation state")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 tracked ids, got %d", r.Len())
	}

	now = now.Add(30 * time.Minute)
	if r.IsRevoked("token-2") {
		t.Fatalf("expected expired entry to be forgotten")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 tracked id, got %d", r.Len())
	}
}
