package dto

// ProfileUpdateRequest is a partial edit of the caller's company record. Omitted fields are kept.
type ProfileUpdateRequest struct {
	CompanyName          *string `json:"company_name,omitempty" validate:"omitempty,min=1,max=200"`
	Sector               *string `json:"sector,omitempty" validate:"omitempty,max=100"`
	Description          *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	WebsiteURL           *string `json:"website_url,omitempty" validate:"omitempty,max=300"`
	ContactInfo          *string `json:"contact_info,omitempty" validate:"omitempty,max=500"`
	ProgramParticipation *string `json:"program_participation,omitempty" validate:"omitempty,max=500"`
}

// UploadSummaryResponse reports a CSV import.
type UploadSummaryResponse struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}
