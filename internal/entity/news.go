package entity

import "time"

// NewsDigest is the folded news summary written back to a company record.
type NewsDigest struct {
	Summary      string
	UpdatedAt    time.Time
	ArticleCount int
}
