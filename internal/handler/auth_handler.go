package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/middleware"
	"github.com/asbhive/directory/api/internal/repository"
	"github.com/asbhive/directory/api/internal/service"
)

// AuthHandler exposes authentication and session endpoints.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// CheckEmail handles POST /auth/check-email requests.
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	var req dto.CheckEmailRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}

	status, err := h.authService.CheckEmail(c.Request().Context(), req.Email)
	if err != nil {
		return serviceError(c, err, "unable to check email")
	}
	return Success(c, http.StatusOK, "email checked", status)
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}

	resp, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "unable to register company")
	}
	return Success(c, http.StatusCreated, "registration successful", resp)
}

// Claim handles POST /auth/claim requests.
func (h *AuthHandler) Claim(c echo.Context) error {
	var req dto.ClaimRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}

	resp, err := h.authService.ClaimAccount(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err, "unable to claim company")
	}
	return Success(c, http.StatusCreated, "account created", resp)
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return Error(c, http.StatusBadRequest, "email and password are required")
	}

	resp, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err, "unable to authenticate")
	}
	return Success(c, http.StatusOK, "login successful", resp)
}

// Logout handles POST /auth/logout requests.
func (h *AuthHandler) Logout(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	if err := h.authService.Logout(session); err != nil {
		return serviceError(c, err, "unable to log out")
	}
	return Success(c, http.StatusOK, "logged out", nil)
}

// Me handles GET /me requests.
func (h *AuthHandler) Me(c echo.Context) error {
	session := middleware.SessionFromContext(c)
	company, err := h.authService.Profile(c.Request().Context(), session)
	if err != nil && !errors.Is(err, repository.ErrCompanyNotFound) {
		return serviceError(c, err, "unable to load profile")
	}
	return Success(c, http.StatusOK, "profile retrieved", map[string]any{
		"user": dto.UserResponse{
			ID:    session.UserID.String(),
			Email: session.Email,
			Role:  session.Role,
		},
		"company": company,
	})
}
