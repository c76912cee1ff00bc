package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/asbhive/directory/api/internal/auth"
	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/middleware"
	"github.com/asbhive/directory/api/internal/repository"
	"github.com/asbhive/directory/api/internal/service"
)

func newAuthHandler(t *testing.T, users repository.UsersRepository, companies repository.CompaniesRepository) (*AuthHandler, *auth.JWTManager, *auth.Revocations) {
	t.Helper()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	revocations := auth.NewRevocations()
	svc := service.NewAuthService(users, companies, jwtManager, revocations, zerolog.Nop())
	return NewAuthHandler(svc), jwtManager, revocations
}

func TestAuthHandler_CheckEmail(t *testing.T) {
	e := newTestEcho()
	companies := &stubCompaniesRepository{
		findByEmail: func(ctx context.Context, email string) (*entity.Company, error) {
			return &entity.Company{Name: "GreenLoop"}, nil
		},
	}
	handler, _, _ := newAuthHandler(t, &stubUsersRepo{}, companies)

	t.Run("invalid email", func(t *testing.T) {
		req, rec := jsonRequest(http.MethodPost, "/auth/check-email", `{"email":"nope"}`)
		_ = handler.CheckEmail(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		env := decodeEnvelope(t, rec, nil)
		if env.Message != "email must be a valid email" {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})

	t.Run("listed company", func(t *testing.T) {
		req, rec := jsonRequest(http.MethodPost, "/auth/check-email", `{"email":"hello@greenloop.my"}`)
		_ = handler.CheckEmail(e.NewContext(req, rec))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var status service.EmailStatus
		decodeEnvelope(t, rec, &status)
		if !status.CompanyExists || status.HasAccount || status.CompanyName != "GreenLoop" {
			t.Fatalf("unexpected status %+v", status)
		}
	})
}

func TestAuthHandler_Register(t *testing.T) {
	e := newTestEcho()

	t.Run("invalid payload", func(t *testing.T) {
		req, rec := jsonRequest(http.MethodPost, "/auth/register", "{")
		handler, _, _ := newAuthHandler(t, &stubUsersRepo{}, &stubCompaniesRepository{})
		if err := handler.Register(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("password mismatch", func(t *testing.T) {
		body := `{"email":"a@example.com","password":"secret1","confirm_password":"secret2","company_name":"A"}`
		req, rec := jsonRequest(http.MethodPost, "/auth/register", body)
		handler, _, _ := newAuthHandler(t, &stubUsersRepo{}, &stubCompaniesRepository{})
		_ = handler.Register(e.NewContext(req, rec))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if env := decodeEnvelope(t, rec, nil); env.Message != "passwords do not match" {
			t.Fatalf("unexpected message %q", env.Message)
		}
	})

	t.Run("account exists", func(t *testing.T) {
		body := `{"email":"a@example.com","password":"secret1","confirm_password":"secret1","company_name":"A"}`
		req, rec := jsonRequest(http.MethodPost, "/auth/register", body)
		users := &stubUsersRepo{
			findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: uuid.New(), Email: email}, nil
			},
		}
		handler, _, _ := newAuthHandler(t, users, &stubCompaniesRepository{})
		_ = handler.Register(e.NewContext(req, rec))
		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		body := `{"email":"a@example.com","password":"secret1","confirm_password":"secret1","company_name":"A","sector":"Arts & Culture"}`
		req, rec := jsonRequest(http.MethodPost, "/auth/register", body)
		users := &stubUsersRepo{
			create: func(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
				return &entity.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Role: role}, nil
			},
		}
		companies := &stubCompaniesRepository{
			insert: func(ctx context.Context, company *entity.Company) error {
				company.ID = uuid.New()
				return nil
			},
		}
		handler, jwtManager, _ := newAuthHandler(t, users, companies)
		if err := handler.Register(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		var resp dto.LoginResponse
		decodeEnvelope(t, rec, &resp)
		if _, err := jwtManager.ParseToken(resp.AccessToken); err != nil || resp.Role != auth.RoleCompany {
			t.Fatalf("unexpected login response %+v (%v)", resp, err)
		}
	})
}

func TestAuthHandler_Login(t *testing.T) {
	e := newTestEcho()
	hashed, err := bcrypt.GenerateFromPassword([]byte("super-secret"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("unexpected bcrypt error: %v", err)
	}
	users := &stubUsersRepo{
		findByEmail: func(ctx context.Context, email string) (*entity.User, error) {
			if email != "admin@example.com" {
				return nil, repository.ErrUserNotFound
			}
			return &entity.User{ID: uuid.New(), Email: email, PasswordHash: string(hashed), Role: auth.RoleAdmin}, nil
		},
	}
	handler, _, _ := newAuthHandler(t, users, &stubCompaniesRepository{})

	tests := map[string]struct {
		body       string
		expectCode int
	}{
		"missing fields":  {body: `{"email":""}`, expectCode: http.StatusBadRequest},
		"unknown user":    {body: `{"email":"x@example.com","password":"super-secret"}`, expectCode: http.StatusUnauthorized},
		"wrong password":  {body: `{"email":"admin@example.com","password":"nope"}`, expectCode: http.StatusUnauthorized},
		"valid login":     {body: `{"email":"admin@example.com","password":"super-secret"}`, expectCode: http.StatusOK},
		"malformed input": {body: `{`, expectCode: http.StatusBadRequest},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			req, rec := jsonRequest(http.MethodPost, "/auth/login", tt.body)
			_ = handler.Login(e.NewContext(req, rec))
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, rec.Code, rec.Body.String())
			}
			if tt.expectCode == http.StatusOK && !strings.Contains(rec.Body.String(), "access_token") {
				t.Fatalf("expected token in body: %s", rec.Body.String())
			}
		})
	}
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	e := newTestEcho()
	companies := &stubCompaniesRepository{
		findByEmail: func(ctx context.Context, email string) (*entity.Company, error) {
			return &entity.Company{ID: uuid.New(), Name: "GreenLoop"}, nil
		},
	}
	handler, jwtManager, revocations := newAuthHandler(t, &stubUsersRepo{}, companies)

	_, claims, err := jwtManager.GenerateToken(uuid.NewString(), "hello@greenloop.my", auth.RoleCompany)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	session, _ := auth.NewSession(claims)

	req, rec := jsonRequest(http.MethodGet, "/me", "")
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeySession, session)
	_ = handler.Me(c)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "GreenLoop") {
		t.Fatalf("unexpected /me response %d: %s", rec.Code, rec.Body.String())
	}

	req, rec = jsonRequest(http.MethodPost, "/auth/logout", "")
	c = e.NewContext(req, rec)
	c.Set(middleware.ContextKeySession, session)
	_ = handler.Logout(c)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !revocations.IsRevoked(claims.ID) {
		t.Fatalf("expected token to be revoked")
	}

	req, rec = jsonRequest(http.MethodPost, "/auth/logout", "")
	_ = handler.Logout(e.NewContext(req, rec))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}
}
