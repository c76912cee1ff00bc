package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/service"
	"github.com/asbhive/directory/api/internal/service/report"
	"github.com/asbhive/directory/api/internal/service/search"
)

// SearchHandler exposes directory search and the sector chart.
type SearchHandler struct {
	companies *service.CompaniesService
	ranker    *search.Ranker
}

// NewSearchHandler wires the handler.
func NewSearchHandler(companies *service.CompaniesService, ranker *search.Ranker) *SearchHandler {
	return &SearchHandler{companies: companies, ranker: ranker}
}

// Search handles POST /search requests.
func (h *SearchHandler) Search(c echo.Context) error {
	var req dto.SearchRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}
	query := strings.TrimSpace(req.Query)

	records, fromSeed, err := h.companies.ListCompanies(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "search failed")
	}
	ranking := h.ranker.Rank(c.Request().Context(), query, records)
	return DirectorySuccess(c, http.StatusOK, "search completed", dto.SearchResponse{
		Query:     query,
		Source:    ranking.Source,
		Total:     len(ranking.Companies),
		Companies: ranking.Companies,
		Sectors:   search.SectorBuckets(ranking.Companies),
	}, fromSeed)
}

// SectorChart handles GET /charts/sectors requests. The optional q parameter narrows the
// records with the basic matcher first.
func (h *SearchHandler) SectorChart(c echo.Context) error {
	records, fromSeed, err := h.companies.ListCompanies(c.Request().Context())
	if err != nil {
		return serviceError(c, err, "failed to build chart")
	}
	matched := search.Match(strings.TrimSpace(c.QueryParam("q")), records)
	return DirectorySuccess(c, http.StatusOK, "chart data generated", report.ChartData(matched), fromSeed)
}
