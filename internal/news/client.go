package news

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/asbhive/directory/api/internal/config"
)

// ErrNoArticles is returned when the feed answered but listed no items.
var ErrNoArticles = errors.New("no news articles found")

const (
	defaultFeedURL      = "https://news.google.com/rss/search"
	defaultQueryContext = "Malaysia social enterprise"
	defaultTimeout      = 10 * time.Second
	defaultMaxArticles  = 2
	userAgent           = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxFeedBytes        = 2 << 20
)

// FeedClient searches the public news feed for a company.
type FeedClient interface {
	Search(ctx context.Context, companyName string, max int) ([]Article, error)
}

// Client queries a Google News style RSS search endpoint.
type Client struct {
	feedURL      string
	queryContext string
	timeout      time.Duration
	httpClient   *http.Client
}

// NewClient builds a feed client from configuration, falling back to defaults for zero values.
func NewClient(cfg config.NewsConfig) *Client {
	c := &Client{
		feedURL:      cfg.FeedURL,
		queryContext: cfg.QueryContext,
		timeout:      cfg.Timeout,
	}
	if c.feedURL == "" {
		c.feedURL = defaultFeedURL
	}
	if c.queryContext == "" {
		c.queryContext = defaultQueryContext
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	c.httpClient = &http.Client{Timeout: c.timeout}
	return c
}

// SearchURL returns the feed URL queried for a company name.
func (c *Client) SearchURL(companyName string) string {
	q := url.Values{}
	q.Set("q", `"`+strings.TrimSpace(companyName)+`" `+c.queryContext)
	q.Set("hl", "en-MY")
	q.Set("gl", "MY")
	q.Set("ceid", "MY:en")
	return c.feedURL + "?" + q.Encode()
}

// Search fetches at most max articles about companyName.
func (c *Client) Search(ctx context.Context, companyName string, max int) ([]Article, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, fmt.Errorf("company name is required")
	}
	if max <= 0 {
		max = defaultMaxArticles
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(companyName), nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	articles, err := ParseFeed(body, max)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}
	return articles, nil
}
