package dto

// NewsUpdateRequest triggers the news refresh for every company or the listed ids.
type NewsUpdateRequest struct {
	UpdateAll  bool     `json:"updateAll"`
	CompanyIDs []string `json:"companyIds" validate:"omitempty,max=500"`
}

// NewsUpdateResult is the per-company outcome of a refresh.
type NewsUpdateResult struct {
	Name          string `json:"name"`
	Status        string `json:"status"`
	ArticlesFound int    `json:"articlesFound"`
	Error         string `json:"error,omitempty"`
}

// NewsUpdateResponse summarises a refresh batch.
type NewsUpdateResponse struct {
	Success             bool               `json:"success"`
	CompaniesUpdated    int                `json:"companiesUpdated"`
	CompaniesWithErrors int                `json:"companiesWithErrors"`
	UpdateResults       []NewsUpdateResult `json:"updateResults"`
}
