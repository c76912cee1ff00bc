package handler

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/repository"
	"github.com/asbhive/directory/api/internal/service/report"
)

func newReportHandler() *ReportHandler {
	return NewReportHandler(
		newCompaniesService(&stubCompaniesRepository{}),
		report.NewSynthesizer(nil, time.Second, zerolog.Nop()),
	)
}

func TestReportHandler_GenerateFromSearchTerm(t *testing.T) {
	e := newTestEcho()
	req, rec := jsonRequest(http.MethodPost, "/reports", `{"search_term":"water"}`)
	if err := newReportHandler().Generate(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ReportResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Report.Source != report.SourceTemplate || resp.Report.CompanyCount != 1 {
		t.Fatalf("unexpected report: %+v", resp.Report)
	}
	if !strings.Contains(resp.Report.Content, "water") {
		t.Fatalf("expected search term in template report, got %q", resp.Report.Content)
	}
	if len(resp.Chart.SectorDistribution) != 1 {
		t.Fatalf("unexpected chart: %+v", resp.Chart)
	}
}

func TestReportHandler_GenerateFromIDs(t *testing.T) {
	e := newTestEcho()
	seeds := repository.SampleCompanies()
	body := fmt.Sprintf(`{"company_ids":[%q,%q]}`, seeds[0].ID, seeds[1].ID)

	req, rec := jsonRequest(http.MethodPost, "/reports", body)
	_ = newReportHandler().Generate(e.NewContext(req, rec))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ReportResponse
	decodeEnvelope(t, rec, &resp)
	if resp.Report.CompanyCount != 2 {
		t.Fatalf("expected 2 companies, got %d", resp.Report.CompanyCount)
	}
}

func TestReportHandler_GenerateRejectsBadIDs(t *testing.T) {
	e := newTestEcho()
	req, rec := jsonRequest(http.MethodPost, "/reports", `{"company_ids":["nope"]}`)
	_ = newReportHandler().Generate(e.NewContext(req, rec))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
