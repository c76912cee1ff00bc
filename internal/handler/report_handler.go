package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/asbhive/directory/api/internal/dto"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/service"
	"github.com/asbhive/directory/api/internal/service/report"
	"github.com/asbhive/directory/api/internal/service/search"
)

// ReportHandler exposes the report synthesizer.
type ReportHandler struct {
	companies   *service.CompaniesService
	synthesizer *report.Synthesizer
}

// NewReportHandler wires the handler.
func NewReportHandler(companies *service.CompaniesService, synthesizer *report.Synthesizer) *ReportHandler {
	return &ReportHandler{companies: companies, synthesizer: synthesizer}
}

// ReportResponse bundles the narrative with its chart.
type ReportResponse struct {
	Report report.Report `json:"report"`
	Chart  report.Chart  `json:"chart"`
}

// Generate handles POST /reports requests.
func (h *ReportHandler) Generate(c echo.Context) error {
	var req dto.ReportRequest
	if msg, ok := bindAndValidate(c, &req); !ok {
		return Error(c, http.StatusBadRequest, msg)
	}

	var (
		records  []entity.Company
		fromSeed bool
		err      error
	)
	if len(req.CompanyIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(req.CompanyIDs))
		for _, raw := range req.CompanyIDs {
			id, parseErr := uuid.Parse(strings.TrimSpace(raw))
			if parseErr != nil {
				return Error(c, http.StatusBadRequest, "invalid company id")
			}
			ids = append(ids, id)
		}
		records, fromSeed, err = h.companies.CompaniesByIDs(c.Request().Context(), ids)
	} else {
		records, fromSeed, err = h.companies.ListCompanies(c.Request().Context())
		records = search.Match(req.SearchTerm, records)
	}
	if err != nil {
		return serviceError(c, err, "failed to generate report")
	}
	generated := h.synthesizer.Synthesize(c.Request().Context(), records, req.SearchTerm)
	return DirectorySuccess(c, http.StatusOK, "report generated", ReportResponse{
		Report: generated,
		Chart:  report.ChartData(records),
	}, fromSeed)
}
