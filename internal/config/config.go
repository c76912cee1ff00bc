package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// AIConfig holds reasoning service settings. An empty APIKey runs the service degraded.
type AIConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewsConfig holds public feed settings for the news refresh batch.
type NewsConfig struct {
	FeedURL      string
	QueryContext string
	Timeout      time.Duration
	Delay        time.Duration
	MaxArticles  int
}

// Config aggregates application-wide configuration values.
type Config struct {
	Env                string
	LogLevel           string
	DatabaseURL        string
	JWTSecret          string
	Port               string
	TokenTTL           time.Duration
	SchedulerAudience  string
	DefaultPhoneRegion string
	AI                 AIConfig
	News               NewsConfig
	RateLimitAI        RateLimitConfig
	RateLimitNews      RateLimitConfig
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret"),
		Port:               getEnv("PORT", "8080"),
		TokenTTL:           parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),
		SchedulerAudience:  os.Getenv("SCHEDULER_AUDIENCE"),
		DefaultPhoneRegion: strings.ToUpper(getEnv("DEFAULT_PHONE_REGION", "MY")),
		AI: AIConfig{
			APIKey:  strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout: parseDuration(getEnv("AI_TIMEOUT", "15s"), 15*time.Second),
		},
		News: NewsConfig{
			FeedURL:      getEnv("NEWS_FEED_URL", "https://news.google.com/rss/search"),
			QueryContext: getEnv("NEWS_QUERY_CONTEXT", "Malaysia social enterprise"),
			Timeout:      parseDuration(getEnv("NEWS_TIMEOUT", "10s"), 10*time.Second),
			Delay:        parseDuration(getEnv("NEWS_DELAY", "1s"), time.Second),
			MaxArticles:  parseInt(getEnv("NEWS_MAX_ARTICLES", "2"), 2),
		},
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_AI", "30/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_AI value: %w", err)
	}
	cfg.RateLimitAI = rl

	rl, err = parseRateLimit(getEnv("RATE_LIMIT_NEWS", "2/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_NEWS value: %w", err)
	}
	cfg.RateLimitNews = rl

	return cfg, nil
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(input string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
