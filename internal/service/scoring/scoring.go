package scoring

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/asbhive/directory/api/internal/entity"
)

const (
	categoryContact = "contact_completeness"
	categoryOnline  = "online_presence"
	categoryImpact  = "impact_profile"
	categoryNews    = "news_visibility"
)

// Funding readiness tiers.
const (
	TierInvestmentReady = "Investment Ready"
	TierDeveloping      = "Developing"
	TierEarlyStage      = "Early Stage"
)

var freeHostingDomains = []string{
	"wordpress.com",
	"blogspot.com",
	"wixsite.com",
	"weebly.com",
	"squarespace.com",
	"medium.com",
	"substack.com",
	"godaddysites.com",
	"notion.site",
	"googlepages.com",
	"facebook.com",
}

var recognisedStatuses = []string{"verified", "certified", "accredited"}

const noNewsPlaceholder = "no recent news"

// ProfileFeatures captures the record signals used to judge funding readiness.
type ProfileFeatures struct {
	Email            string
	ContactInfo      string
	Website          string
	Description      string
	Status           string
	Programs         string
	NewsSummary      string
	NewsArticleCount int
}

// ReadinessResult reports the aggregate score, its tier and the per-category breakdown.
type ReadinessResult struct {
	Total     int
	Tier      string
	Breakdown map[string]int
}

// FeaturesFromCompany extracts scoring features from a directory record.
func FeaturesFromCompany(c entity.Company) ProfileFeatures {
	return ProfileFeatures{
		Email:            deref(c.Email),
		ContactInfo:      deref(c.ContactInfo),
		Website:          deref(c.WebsiteURL),
		Description:      c.Description,
		Status:           c.Status,
		Programs:         deref(c.ProgramParticipation),
		NewsSummary:      c.NewsSummary,
		NewsArticleCount: c.NewsArticleCount,
	}
}

// ComputeReadiness evaluates the provided features on a 0..100 scale.
func ComputeReadiness(input ProfileFeatures) ReadinessResult {
	breakdown := map[string]int{
		categoryContact: scoreContactCompleteness(input),
		categoryOnline:  scoreOnlinePresence(input),
		categoryImpact:  scoreImpactProfile(input),
		categoryNews:    scoreNewsVisibility(input),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ReadinessResult{
		Total:     total,
		Tier:      Tier(total),
		Breakdown: breakdown,
	}
}

// Tier maps a readiness score to its funding readiness label.
func Tier(score int) string {
	switch {
	case score >= 70:
		return TierInvestmentReady
	case score >= 40:
		return TierDeveloping
	default:
		return TierEarlyStage
	}
}

// MeanTier returns the tier of the average readiness across companies.
func MeanTier(companies []entity.Company) string {
	if len(companies) == 0 {
		return TierEarlyStage
	}
	sum := 0
	for _, c := range companies {
		sum += ComputeReadiness(FeaturesFromCompany(c)).Total
	}
	return Tier(sum / len(companies))
}

func scoreContactCompleteness(input ProfileFeatures) int {
	score := 0
	if strings.Contains(strings.TrimSpace(input.Email), "@") {
		score += 10
	}
	if strings.TrimSpace(input.ContactInfo) != "" {
		score += 10
	}
	if hasCompleteAddress(input.ContactInfo) {
		score += 10
	}
	if score > 30 {
		return 30
	}
	return score
}

func scoreOnlinePresence(input ProfileFeatures) int {
	score := 0
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(input.Website)), "https://") {
		score += 15
	}
	if highQualityDomain(input.Website) {
		score += 10
	}
	if score > 25 {
		return 25
	}
	return score
}

func scoreImpactProfile(input ProfileFeatures) int {
	score := 0
	switch desc := len([]rune(strings.TrimSpace(input.Description))); {
	case desc >= 80:
		score += 10
	case desc >= 30:
		score += 5
	}
	status := strings.ToLower(strings.TrimSpace(input.Status))
	for _, s := range recognisedStatuses {
		if strings.Contains(status, s) {
			score += 10
			break
		}
	}
	score += min(countListItems(input.Programs)*5, 10)
	if score > 30 {
		return 30
	}
	return score
}

func scoreNewsVisibility(input ProfileFeatures) int {
	score := min(input.NewsArticleCount*5, 10)
	summary := strings.ToLower(strings.TrimSpace(input.NewsSummary))
	if summary != "" && !strings.HasPrefix(summary, noNewsPlaceholder) {
		score += 5
	}
	if score > 15 {
		return 15
	}
	return score
}

func countListItems(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	count := 0
	for _, token := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|' || r == '\n'
	}) {
		if strings.TrimSpace(token) != "" {
			count++
		}
	}
	return count
}

func hasCompleteAddress(raw string) bool {
	addr := strings.TrimSpace(raw)
	if len(addr) < 10 {
		return false
	}
	var hasLetter, hasDigit bool
	separatorCount := 0
	for _, r := range addr {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case r == ',':
			separatorCount++
		}
	}
	return hasLetter && hasDigit && separatorCount >= 1
}

func highQualityDomain(raw string) bool {
	domain := extractDomain(raw)
	if domain == "" {
		return false
	}
	for _, bad := range freeHostingDomains {
		if domain == bad || strings.HasSuffix(domain, "."+bad) {
			return false
		}
	}
	return strings.Count(domain, ".") >= 1
}

func extractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	parsed, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	host := strings.TrimSpace(strings.ToLower(parsed.Hostname()))
	return strings.TrimPrefix(host, "www.")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
