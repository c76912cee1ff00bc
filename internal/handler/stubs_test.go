package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/repository"
)

type stubCompaniesRepository struct {
	fetchAll    func(ctx context.Context) ([]entity.Company, error)
	findByID    func(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	findByEmail func(ctx context.Context, email string) (*entity.Company, error)
	insert      func(ctx context.Context, company *entity.Company) error
	update      func(ctx context.Context, id uuid.UUID, update entity.CompanyUpdate) (*entity.Company, error)
	updateNews  func(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error
	bulk        func(ctx context.Context, companies []entity.Company) (repository.BulkResult, error)
}

func (s *stubCompaniesRepository) FetchAll(ctx context.Context) ([]entity.Company, error) {
	if s.fetchAll != nil {
		return s.fetchAll(ctx)
	}
	return nil, repository.ErrStoreUnavailable
}

func (s *stubCompaniesRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	if s.findByID != nil {
		return s.findByID(ctx, id)
	}
	return nil, repository.ErrStoreUnavailable
}

func (s *stubCompaniesRepository) FindByEmail(ctx context.Context, email string) (*entity.Company, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, repository.ErrCompanyNotFound
}

func (s *stubCompaniesRepository) Insert(ctx context.Context, company *entity.Company) error {
	if s.insert != nil {
		return s.insert(ctx, company)
	}
	return errors.New("not implemented")
}

func (s *stubCompaniesRepository) Update(ctx context.Context, id uuid.UUID, update entity.CompanyUpdate) (*entity.Company, error) {
	if s.update != nil {
		return s.update(ctx, id, update)
	}
	return nil, errors.New("not implemented")
}

func (s *stubCompaniesRepository) UpdateNews(ctx context.Context, id uuid.UUID, digest entity.NewsDigest) error {
	if s.updateNews != nil {
		return s.updateNews(ctx, id, digest)
	}
	return nil
}

func (s *stubCompaniesRepository) BulkInsert(ctx context.Context, companies []entity.Company) (repository.BulkResult, error) {
	if s.bulk != nil {
		return s.bulk(ctx, companies)
	}
	return repository.BulkResult{Inserted: len(companies), Total: len(companies)}, nil
}

type stubUsersRepo struct {
	findByEmail func(ctx context.Context, email string) (*entity.User, error)
	create      func(ctx context.Context, email, passwordHash, role string) (*entity.User, error)
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if s.findByEmail != nil {
		return s.findByEmail(ctx, email)
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUsersRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubUsersRepo) Create(ctx context.Context, email, passwordHash, role string) (*entity.User, error) {
	if s.create != nil {
		return s.create(ctx, email, passwordHash, role)
	}
	return nil, errors.New("not implemented")
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Source  string          `json:"source"`
	Data    json.RawMessage `json:"data"`
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func jsonRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req, httptest.NewRecorder()
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %s: %v", rec.Body.String(), err)
	}
	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			t.Fatalf("failed to decode data: %v", err)
		}
	}
	return env
}
