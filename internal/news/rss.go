package news

import (
	"fmt"
	"strings"
	"time"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// UnknownSource labels articles whose feed item names no publisher.
const UnknownSource = "Unknown Source"

// Article is one feed item about a company.
type Article struct {
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"published_at"`
	RawDate     string    `json:"raw_date"`
	Source      string    `json:"source"`
	Description string    `json:"description"`
}

var pubDateLayouts = []string{
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.RFC3339,
}

// ParseFeed reads rss/channel/item elements and returns up to max articles in feed order.
func ParseFeed(data []byte, max int) ([]Article, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	channel := doc.FindElement("/rss/channel")
	if channel == nil {
		return nil, fmt.Errorf("parse feed: missing rss channel")
	}

	items := channel.SelectElements("item")
	if max > 0 && len(items) > max {
		items = items[:max]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		a := Article{
			Title:       StripMarkup(childText(item, "title")),
			Link:        strings.TrimSpace(childText(item, "link")),
			RawDate:     strings.TrimSpace(childText(item, "pubDate")),
			Source:      strings.TrimSpace(childText(item, "source")),
			Description: StripMarkup(childText(item, "description")),
		}
		if a.Source == "" {
			a.Source = UnknownSource
		}
		a.PublishedAt = parsePubDate(a.RawDate)
		articles = append(articles, a)
	}
	return articles, nil
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}

func parsePubDate(raw string) time.Time {
	for _, layout := range pubDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// StripMarkup drops HTML tags from s and collapses whitespace, keeping text content.
func StripMarkup(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a tokenizer error; either way keep what was read.
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
			sb.WriteByte(' ')
		}
	}
}
