package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/storepulse/backend/internal/config"
	"github.com/storepulse/backend/internal/prompt"
)

// Provider produces raw report text for a composed prompt. Implementations
// make a single attempt and never retry.
type Provider interface {
	Generate(ctx context.Context, p prompt.Prompt) (string, error)
	Name() string
}

const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// FromConfig builds the provider selected by AI_PROVIDER. The returned
// close function releases any client the provider holds.
func FromConfig(ctx context.Context, cfg config.Config) (Provider, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.AIProvider)) {
	case "", ProviderMock:
		return MockProvider{Model: "mock-1"}, noop, nil
	case ProviderOpenAI:
		model := cfg.AIModel
		if model == "" {
			model = "gpt-4o-mini"
		}
		return OpenAIProvider{
			BaseURL:     cfg.AIBaseURL,
			Model:       model,
			APIKey:      cfg.AIAPIKey,
			Temperature: 0.7,
			Timeout:     cfg.ProviderTimeout,
		}, noop, nil
	case ProviderGemini:
		model := cfg.AIModel
		if model == "" {
			model = "gemini-1.5-flash"
		}
		g, err := NewGeminiProvider(ctx, cfg.AIAPIKey, model)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown AI_PROVIDER %q", cfg.AIProvider)
	}
}

type RateLimitError struct {
	RetryAfter time.Duration
}

func (r RateLimitError) Error() string {
	if r.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", r.RetryAfter)
	}
	return "rate limited"
}

type TimeoutError struct {
	Provider string
}

func (e TimeoutError) Error() string {
	return e.Provider + " request timed out"
}
