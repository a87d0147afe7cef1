package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storepulse/backend/internal/config"
	"github.com/storepulse/backend/internal/prompt"
	"github.com/storepulse/backend/internal/report"
)

var samplePrompt = prompt.Prompt{System: "sys", User: "user body", Schema: prompt.SchemaHint}

func TestMockProvider_SchemaValidAndDeterministic(t *testing.T) {
	m := MockProvider{}
	a, err := m.Generate(context.Background(), samplePrompt)
	require.NoError(t, err)
	b, err := m.Generate(context.Background(), samplePrompt)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = report.ParseContent(a)
	require.NoError(t, err)
}

func TestMockProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := MockProvider{}.Generate(ctx, samplePrompt)
	require.Error(t, err)
}

func TestOpenAIProvider_Success(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{\"summary\":\"ok\"}"}}]}`))
	}))
	defer srv.Close()

	p := OpenAIProvider{BaseURL: srv.URL + "/v1/", Model: "m", APIKey: "k", Temperature: 0.7}
	out, err := p.Generate(context.Background(), samplePrompt)
	require.NoError(t, err)
	assert.Equal(t, `{"summary":"ok"}`, out)

	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user body", got.Messages[1].Content)
}

func TestOpenAIProvider_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
	}))
	defer srv.Close()

	_, err := OpenAIProvider{BaseURL: srv.URL, Model: "m"}.Generate(context.Background(), samplePrompt)
	var rl RateLimitError
	require.True(t, errors.As(err, &rl), "got %v", err)
	assert.Equal(t, 3*time.Second, rl.RetryAfter)
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := OpenAIProvider{BaseURL: srv.URL, Model: "m"}.Generate(context.Background(), samplePrompt)
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOpenAIProvider_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := OpenAIProvider{BaseURL: srv.URL, Model: "m"}.Generate(ctx, samplePrompt)
	var te TimeoutError
	require.True(t, errors.As(err, &te), "got %v", err)
}

func TestOpenAIProvider_MissingConfig(t *testing.T) {
	_, err := OpenAIProvider{Model: "m"}.Generate(context.Background(), samplePrompt)
	require.Error(t, err)
}

func TestFromConfig(t *testing.T) {
	p, closeFn, err := FromConfig(context.Background(), config.Config{AIProvider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, ProviderMock, p.Name())
	require.NoError(t, closeFn())

	p, _, err = FromConfig(context.Background(), config.Config{AIProvider: "OpenAI", AIBaseURL: "http://x"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.(OpenAIProvider).Model)

	_, _, err = FromConfig(context.Background(), config.Config{AIProvider: "gemini"})
	require.Error(t, err)

	_, _, err = FromConfig(context.Background(), config.Config{AIProvider: "other"})
	require.Error(t, err)
}
