package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// GeminiConfig configures the Gemini backed generator.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	// BaseURL and HTTPClient override the endpoint, mainly for tests.
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini implements Generator over the Google GenAI SDK.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGemini creates a Gemini client. An empty API key yields ErrCredentialMissing.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrCredentialMissing
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.2
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, temperature: temperature}, nil
}

// Model returns the configured model name.
func (g *Gemini) Model() string {
	return g.model
}

// Generate sends prompt as a single-turn request and returns the model text unmodified.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty text", ErrMalformedResponse)
	}
	return text, nil
}
