package dto

import "github.com/asbhive/directory/api/internal/entity"

// SearchRequest is a free-text directory search.
type SearchRequest struct {
	Query string `json:"query" validate:"max=500"`
}

// SearchResponse lists ranked companies with the sector aggregate of the result.
type SearchResponse struct {
	Query     string                `json:"query"`
	Source    string                `json:"source"`
	Total     int                   `json:"total"`
	Companies []entity.Company      `json:"companies"`
	Sectors   []entity.SectorBucket `json:"sectors"`
}

// ReportRequest selects the companies to analyse: explicit ids, or the search results for SearchTerm.
type ReportRequest struct {
	SearchTerm string   `json:"search_term" validate:"max=500"`
	CompanyIDs []string `json:"company_ids" validate:"omitempty,max=200,dive,uuid"`
}
