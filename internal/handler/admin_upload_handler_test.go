package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/repository"
)

func multipartCSV(t *testing.T, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "companies.csv")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/admin/upload-csv", &buf)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	return req
}

const validCSV = "company_name,email,sector,description\nGreenLoop,hello@greenloop.my,Environmental Technology,Recycling\n"

func TestAdminUploadHandler_UploadCSV(t *testing.T) {
	e := newTestEcho()

	tests := map[string]struct {
		request    func(t *testing.T) *http.Request
		bulk       func(ctx context.Context, companies []entity.Company) (repository.BulkResult, error)
		expectCode int
	}{
		"missing file": {
			request: func(t *testing.T) *http.Request {
				return httptest.NewRequest(http.MethodPost, "/admin/upload-csv", nil)
			},
			expectCode: http.StatusBadRequest,
		},
		"invalid csv": {
			request:    func(t *testing.T) *http.Request { return multipartCSV(t, "name\nx\n") },
			expectCode: http.StatusBadRequest,
		},
		"store unavailable": {
			request: func(t *testing.T) *http.Request { return multipartCSV(t, validCSV) },
			bulk: func(ctx context.Context, companies []entity.Company) (repository.BulkResult, error) {
				return repository.BulkResult{}, repository.ErrStoreUnavailable
			},
			expectCode: http.StatusServiceUnavailable,
		},
		"repository error": {
			request: func(t *testing.T) *http.Request { return multipartCSV(t, validCSV) },
			bulk: func(ctx context.Context, companies []entity.Company) (repository.BulkResult, error) {
				return repository.BulkResult{}, errors.New("boom")
			},
			expectCode: http.StatusInternalServerError,
		},
		"success": {
			request:    func(t *testing.T) *http.Request { return multipartCSV(t, validCSV) },
			expectCode: http.StatusOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler := NewAdminUploadHandler(newCompaniesService(&stubCompaniesRepository{bulk: tt.bulk}))
			if err := handler.UploadCSV(e.NewContext(tt.request(t), rec)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rec.Code != tt.expectCode {
				t.Fatalf("expected %d, got %d: %s", tt.expectCode, rec.Code, rec.Body.String())
			}
			if tt.expectCode != http.StatusOK {
				return
			}
			var summary dto.UploadSummaryResponse
			decodeEnvelope(t, rec, &summary)
			if summary.Inserted != 1 || summary.Total != 1 {
				t.Fatalf("unexpected summary: %+v", summary)
			}
		})
	}
}
