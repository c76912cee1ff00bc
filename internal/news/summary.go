package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/asbhive/directory/api/internal/entity"
)

// Placeholder is stored when a company has no news and the refresh produced none.
const Placeholder = "No recent news available"

const dateLayout = "2 Jan 2006"

// FoldSummary renders articles as "1. Title (2 Jan 2006) - Source | 2. ...".
func FoldSummary(articles []Article) string {
	parts := make([]string, 0, len(articles))
	for i, a := range articles {
		date := a.RawDate
		if !a.PublishedAt.IsZero() {
			date = a.PublishedAt.Format(dateLayout)
		}
		if date == "" {
			date = "undated"
		}
		parts = append(parts, fmt.Sprintf("%d. %s (%s) - %s", i+1, strings.TrimSpace(a.Title), date, a.Source))
	}
	return strings.Join(parts, " | ")
}

// Digest builds the record fields written back after a successful search.
func Digest(articles []Article, now time.Time) entity.NewsDigest {
	return entity.NewsDigest{
		Summary:      FoldSummary(articles),
		UpdatedAt:    now.UTC(),
		ArticleCount: len(articles),
	}
}
