package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/middleware"
	"github.com/asbhive/directory/api/internal/service"
)

// CompaniesHandler exposes company directory endpoints.
type CompaniesHandler struct {
	service *service.CompaniesService
}

// NewCompaniesHandler creates a new handler instance.
func NewCompaniesHandler(service *service.CompaniesService) *CompaniesHandler {
	return &CompaniesHandler{service: service}
}

// List handles GET /companies requests.
func (h *CompaniesHandler) List(c echo.Context) error {
	companies, fromSeed, err := h.service.ListCompanies(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to list companies")
	}
	return DirectorySuccess(c, http.StatusOK, "companies retrieved", companies, fromSeed)
}

// Get handles GET /companies/:id requests.
func (h *CompaniesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid company id")
	}

	company, err := h.service.GetCompany(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err, "failed to load company")
	}
	return Success(c, http.StatusOK, "company retrieved", company)
}

// UpdateProfile handles PUT /me/company requests.
func (h *CompaniesHandler) UpdateProfile(c echo.Context) error {
	var req dto.ProfileUpdateRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}

	company, err := h.service.UpdateProfile(c.Request().Context(), middleware.SessionFromContext(c), req)
	if err != nil {
		return serviceError(c, err, "failed to update company")
	}
	return Success(c, http.StatusOK, "company updated", company)
}
