package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/repository"
	"github.com/asbhive/directory/api/internal/service"
)

// serviceError maps domain errors onto the response envelope. fallback is used for
// anything unexpected so internals never leak to clients.
func serviceError(c echo.Context, err error, fallback string) error {
	var validationErr service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return Error(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSessionInactive):
		return Error(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrAccountExists),
		errors.Is(err, service.ErrCompanyListed):
		return Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrCompanyNotListed),
		errors.Is(err, repository.ErrCompanyNotFound):
		return Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrStoreUnavailable):
		return Error(c, http.StatusServiceUnavailable, "record store unavailable")
	default:
		return Error(c, http.StatusInternalServerError, fallback)
	}
}
