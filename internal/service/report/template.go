package report

import (
	"fmt"
	"strings"

	"github.com/asbhive/directory/api/internal/entity"
	"github.com/asbhive/directory/api/internal/service/search"
)

// BasicReport renders a markdown report from local aggregates only. It is deterministic
// and always returns a non-empty document, including for an empty record set.
func BasicReport(records []entity.Company, searchTerm string) string {
	buckets := search.SectorBuckets(records)
	searchTerm = strings.TrimSpace(searchTerm)

	var sb strings.Builder
	sb.WriteString("# Analysis Summary\n\n")

	sb.WriteString("## Executive Summary\n")
	fmt.Fprintf(&sb, "Found %d social enterprises", len(records))
	if searchTerm != "" {
		fmt.Fprintf(&sb, " matching %q", searchTerm)
	}
	sb.WriteString(".\n\n")

	sb.WriteString("## Sector Distribution\n")
	fmt.Fprintf(&sb, "- **Total Sectors**: %d\n", len(buckets))
	top := buckets
	if len(top) > 3 {
		top = top[:3]
	}
	topLabels := make([]string, 0, len(top))
	for _, b := range top {
		topLabels = append(topLabels, fmt.Sprintf("%s (%d)", b.Sector, b.Count))
	}
	if len(topLabels) == 0 {
		topLabels = append(topLabels, "none")
	}
	fmt.Fprintf(&sb, "- **Top Sectors**: %s\n", strings.Join(topLabels, ", "))
	for _, b := range buckets {
		fmt.Fprintf(&sb, "- %s: %d (%.1f%%), funding readiness: %s\n", b.Sector, b.Count, b.Percentage, b.FundingReadiness)
	}
	sb.WriteString("\n")

	leading := "various sectors"
	if len(buckets) > 0 {
		leading = buckets[0].Sector
	}
	sb.WriteString("## Key Insights\n")
	fmt.Fprintf(&sb, "- Diverse ecosystem spanning %d different sectors\n", len(buckets))
	fmt.Fprintf(&sb, "- Strong representation in %s\n", leading)
	sb.WriteString("- Opportunities for cross-sector collaboration\n\n")

	sb.WriteString("## Recommendations\n")
	sb.WriteString("- Consider partnerships between complementary sectors\n")
	sb.WriteString("- Explore knowledge sharing initiatives\n")
	sb.WriteString("- Investigate collaborative funding opportunities\n")

	return sb.String()
}
