package ai

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentiment(t *testing.T) {
	cases := map[string]Sentiment{
		"positive":                          SentimentPositive,
		"  Negative.\n":                     SentimentNegative,
		"NEUTRAL":                           SentimentNeutral,
		"The sentiment is positive overall": SentimentPositive,
		"negative, not positive":            SentimentNegative,
		"":                                  SentimentNeutral,
		"I cannot tell":                     SentimentNeutral,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseSentiment(raw), "raw=%q", raw)
	}
}

func TestSentimentEmoji(t *testing.T) {
	assert.Equal(t, "😊", SentimentPositive.Emoji())
	assert.Equal(t, "😞", SentimentNegative.Emoji())
	assert.Equal(t, "😐", SentimentNeutral.Emoji())
	assert.Equal(t, "😐", Sentiment("").Emoji())
}

type fakeSentiment struct {
	result Sentiment
	err    error
	calls  int
}

func (f *fakeSentiment) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	f.calls++
	return f.result, f.err
}

func TestFallbackService(t *testing.T) {
	t.Run("primary succeeds", func(t *testing.T) {
		primary := &fakeSentiment{result: SentimentPositive}
		secondary := &fakeSentiment{result: SentimentNegative}

		got, err := NewFallbackService(primary, secondary).ClassifySentiment(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, SentimentPositive, got)
		assert.Zero(t, secondary.calls)
	})

	t.Run("falls back on error", func(t *testing.T) {
		primary := &fakeSentiment{err: errors.New("dial tcp 127.0.0.1:11434: connection refused")}
		secondary := &fakeSentiment{result: SentimentNegative}

		got, err := NewFallbackService(primary, secondary).ClassifySentiment(context.Background(), "x")

		require.NoError(t, err)
		assert.Equal(t, SentimentNegative, got)
		assert.Equal(t, 1, primary.calls)
	})

	t.Run("no provider left", func(t *testing.T) {
		primary := &fakeSentiment{err: errors.New("boom")}

		_, err := NewFallbackService(primary, nil).ClassifySentiment(context.Background(), "x")

		assert.Error(t, err)
	})
}

func TestIsConnectionError(t *testing.T) {
	assert.True(t, isConnectionError(errors.New("dial tcp: connection refused")))
	assert.False(t, isConnectionError(errors.New("model not found")))
	assert.False(t, isConnectionError(nil))
}

func TestOllamaService_ClassifySentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), `"model":"tiny"`)
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"tiny","response":"Negative","done":true}` + "\n"))
	}))
	defer srv.Close()

	got, err := NewOllamaService(srv.URL, "tiny").ClassifySentiment(context.Background(), "Storm floods city")

	require.NoError(t, err)
	assert.Equal(t, SentimentNegative, got)
}

func TestOllamaService_ListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tags", r.URL.Path)
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest"},{"name":"mistral:7b"}]}`))
	}))
	defer srv.Close()

	models, err := NewOllamaService(srv.URL, "").ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"llama3.2:latest", "mistral:7b"}, models)
}

func TestOpenAIService_ClassifySentiment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"positive"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	got, err := NewOpenAIService(srv.URL, "key", "test-model").ClassifySentiment(context.Background(), "Team wins final")

	require.NoError(t, err)
	assert.Equal(t, SentimentPositive, got)
}

func TestNewSentimentService(t *testing.T) {
	_, err := NewSentimentService(Config{Provider: ProviderGemini})
	assert.Error(t, err)

	svc, err := NewSentimentService(Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.IsType(t, &OllamaService{}, svc)

	svc, err = NewSentimentService(Config{Provider: ProviderAuto, GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &FallbackService{}, svc)
}
