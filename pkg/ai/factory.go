package ai

import (
	"context"
	"fmt"

	"newspulse-backend/pkg/gemini"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	GeminiAPIKey string

	OllamaBaseURL string // e.g., "http://localhost:11434"
	OllamaModel   string // e.g., "llama3.2"

	// OpenAIBaseURL may point at any OpenAI-compatible server; empty means api.openai.com.
	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// geminiSentiment adapts the raw Gemini answer to a Sentiment.
type geminiSentiment struct {
	svc *gemini.GeminiService
}

func (g *geminiSentiment) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	raw, err := g.svc.ClassifySentiment(ctx, text)
	if err != nil {
		return "", err
	}
	return ParseSentiment(raw), nil
}

func newGemini(apiKey string) SentimentService {
	return &geminiSentiment{svc: gemini.NewGeminiService(apiKey)}
}

// NewSentimentService creates a SentimentService based on the config
func NewSentimentService(cfg Config) (SentimentService, error) {
	return NewSentimentServiceWithOllama(cfg, NewOllamaService(cfg.OllamaBaseURL, cfg.OllamaModel))
}

// NewSentimentServiceWithOllama is NewSentimentService with a caller-owned Ollama
// service, so runtime settings changes reach the provider.
func NewSentimentServiceWithOllama(cfg Config, ollama *OllamaService) (SentimentService, error) {
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return newGemini(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		return ollama, nil

	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" && cfg.OpenAIBaseURL == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_BASE_URL is required for OpenAI provider")
		}
		return NewOpenAIService(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel), nil

	default:
		// Local model first, Gemini when a key is available
		var secondary SentimentService
		if cfg.GeminiAPIKey != "" {
			secondary = newGemini(cfg.GeminiAPIKey)
		}
		return NewFallbackService(ollama, secondary), nil
	}
}
