package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/asbhive/directory/api/internal/ai"
	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/service/search"
)

// Report sources.
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

const (
	defaultDetailLimit = 15
	defaultDescLimit   = 200
	defaultTimeout     = 15 * time.Second
)

// Report is a narrative analysis of a set of companies.
type Report struct {
	Content      string                `json:"content"`
	Source       string                `json:"source"`
	SearchTerm   string                `json:"search_term,omitempty"`
	CompanyCount int                   `json:"company_count"`
	Sectors      []entity.SectorBucket `json:"sectors"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// Synthesizer writes reports through the reasoning service with a deterministic template fallback.
type Synthesizer struct {
	gen         ai.Generator
	detailLimit int
	descLimit   int
	timeout     time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewSynthesizer builds a Synthesizer. A nil generator always uses BasicReport.
func NewSynthesizer(gen ai.Generator, timeout time.Duration, log zerolog.Logger) *Synthesizer {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Synthesizer{
		gen:         gen,
		detailLimit: defaultDetailLimit,
		descLimit:   defaultDescLimit,
		timeout:     timeout,
		log:         log,
		now:         time.Now,
	}
}

// Synthesize never fails; reasoning service problems produce the template report.
func (s *Synthesizer) Synthesize(ctx context.Context, records []entity.Company, searchTerm string) Report {
	searchTerm = strings.TrimSpace(searchTerm)
	buckets := search.SectorBuckets(records)

	primary := func(ctx context.Context, gen ai.Generator) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		text, err := gen.Generate(ctx, s.buildPrompt(records, searchTerm))
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%w: empty report", ai.ErrMalformedResponse)
		}
		return text, nil
	}
	fallback := func() string {
		return BasicReport(records, searchTerm)
	}

	content, usedAI := ai.FailSoft(ctx, s.log, "report", s.gen, primary, fallback)
	source := SourceTemplate
	if usedAI {
		source = SourceAI
	}

	return Report{
		Content:      content,
		Source:       source,
		SearchTerm:   searchTerm,
		CompanyCount: len(records),
		Sectors:      buckets,
		GeneratedAt:  s.now().UTC(),
	}
}

func (s *Synthesizer) buildPrompt(records []entity.Company, searchTerm string) string {
	var distribution bytes.Buffer
	enc := json.NewEncoder(&distribution)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(search.Bucket(records))

	var sb strings.Builder
	sb.WriteString("Analyze the following Malaysian social enterprises and provide insights.\n\n")
	fmt.Fprintf(&sb, "Search Term: %q\n", searchTerm)
	fmt.Fprintf(&sb, "Total Companies: %d\n", len(records))
	fmt.Fprintf(&sb, "Sectors Distribution: %s\n", strings.TrimSpace(distribution.String()))

	sb.WriteString("\nCompanies:\n")
	detail := records
	if len(detail) > s.detailLimit {
		detail = detail[:s.detailLimit]
	}
	for _, c := range detail {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", c.Name, c.SectorKey(), clip(c.Description, s.descLimit))
		if c.WebsiteURL != nil {
			fmt.Fprintf(&sb, "  Website: %s\n", *c.WebsiteURL)
		}
		if c.Status != "" {
			fmt.Fprintf(&sb, "  Status: %s\n", c.Status)
		}
		if c.ProgramParticipation != nil {
			fmt.Fprintf(&sb, "  Programs: %s\n", *c.ProgramParticipation)
		}
		if c.NewsSummary != "" {
			fmt.Fprintf(&sb, "  Recent news: %s\n", c.NewsSummary)
		}
	}

	sb.WriteString("\nGenerate a comprehensive analysis covering:\n")
	for i, section := range sections {
		fmt.Fprintf(&sb, "%d. **%s** - %s\n", i+1, section.title, section.brief)
	}
	sb.WriteString("\nFormat as markdown with a heading per section and bullet points.\n")
	return sb.String()
}

var sections = []struct {
	title string
	brief string
}{
	{"Executive Summary", "key findings and overview"},
	{"Sector Breakdown & Opportunities", "distribution, trends and opportunity per sector"},
	{"Company Spotlight", "a handful of notable enterprises and their approach"},
	{"Market Context", "the Malaysian social enterprise landscape these companies operate in"},
	{"Recommendations", "strategic suggestions for funders and partners"},
}

func clip(s string, limit int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
