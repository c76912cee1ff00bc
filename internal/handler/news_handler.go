package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/middleware"
	"github.com/asbhive/directory/api/internal/service"
)

// NewsHandler triggers the news refresh batch. Its responses use the batch contract
// rather than the shared envelope.
type NewsHandler struct {
	news *service.NewsService
	log  zerolog.Logger
}

// NewNewsHandler wires the handler.
func NewNewsHandler(news *service.NewsService, log zerolog.Logger) *NewsHandler {
	return &NewsHandler{news: news, log: log}
}

type newsErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Update handles POST /news/update requests.
func (h *NewsHandler) Update(c echo.Context) error {
	var req dto.NewsUpdateRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return c.JSON(http.StatusBadRequest, newsErrorResponse{Error: msg})
	}

	trigger, _ := c.Get(middleware.ContextKeyTrigger).(string)
	h.log.Info().
		Str("trigger", trigger).
		Bool("update_all", req.UpdateAll).
		Int("company_ids", len(req.CompanyIDs)).
		Str("request_id", middleware.RequestIDFromContext(c)).
		Msg("news refresh started")

	resp, err := h.news.RefreshRequest(c.Request().Context(), req)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusBadRequest, newsErrorResponse{Error: validationErr.Message})
		}
		h.log.Error().Err(err).Msg("news refresh failed")
		return c.JSON(http.StatusInternalServerError, newsErrorResponse{Error: "failed to update news"})
	}

	h.log.Info().
		Int("updated", resp.CompaniesUpdated).
		Int("errors", resp.CompaniesWithErrors).
		Msg("news refresh finished")
	return c.JSON(http.StatusOK, resp)
}
