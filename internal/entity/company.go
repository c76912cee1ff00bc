package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UncategorizedSector groups records whose sector is empty.
const UncategorizedSector = "Uncategorized"

// KnownSectors is the recommended sector vocabulary. It is advisory only.
var KnownSectors = []string{
	"Environmental Technology",
	"Digital Inclusion",
	"Education & Training",
	"Agriculture & Food Security",
	"Financial Inclusion",
	"Water & Sanitation",
	"Healthcare & Elderly Care",
	"Youth Development",
	"Arts & Culture",
	"Community Development",
	"Fair Trade & Crafts",
	"Renewable Energy",
}

// Company represents a social enterprise listed in the directory.
type Company struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"company_name"`
	Email                *string    `json:"email,omitempty"`
	Sector               string     `json:"sector"`
	Description          string     `json:"description"`
	WebsiteURL           *string    `json:"website_url,omitempty"`
	ContactInfo          *string    `json:"contact_info,omitempty"`
	Status               string     `json:"social_enterprise_status"`
	NewsSummary          string     `json:"related_news_updates"`
	NewsUpdatedAt        *time.Time `json:"news_last_updated,omitempty"`
	NewsArticleCount     int        `json:"news_articles_count"`
	ProgramParticipation *string    `json:"program_participation,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

// SectorKey returns the bucket key used when grouping by sector.
func (c Company) SectorKey() string {
	sector := strings.TrimSpace(c.Sector)
	if sector == "" {
		return UncategorizedSector
	}
	return sector
}

// Complete reports whether the record carries the fields required for reporting.
func (c Company) Complete() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.Sector) != ""
}

// CompanyUpdate carries a partial update. Nil fields are left untouched.
type CompanyUpdate struct {
	Name                 *string
	Email                *string
	Sector               *string
	Description          *string
	WebsiteURL           *string
	ContactInfo          *string
	Status               *string
	ProgramParticipation *string
}

// Empty reports whether the update would change nothing.
func (u CompanyUpdate) Empty() bool {
	return u.Name == nil && u.Email == nil && u.Sector == nil && u.Description == nil &&
		u.WebsiteURL == nil && u.ContactInfo == nil && u.Status == nil && u.ProgramParticipation == nil
}

// SectorBucket is the per-sector aggregate computed for every search and report.
type SectorBucket struct {
	Sector           string  `json:"sector"`
	Count            int     `json:"count"`
	Percentage       float64 `json:"percentage"`
	FundingReadiness string  `json:"funding_readiness"`
}
