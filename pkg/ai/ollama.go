package ai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

// OllamaService implements SentimentService using Ollama local LLM
type OllamaService struct {
	getBaseURL func() string
	getModel   func() string
	httpClient *http.Client
}

// NewOllamaService creates a new Ollama service with fixed settings
func NewOllamaService(baseURL, model string) *OllamaService {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return NewOllamaServiceWithGetters(
		func() string { return baseURL },
		func() string { return model },
	)
}

// NewOllamaServiceWithGetters reads base URL and model on every call
func NewOllamaServiceWithGetters(getBaseURL, getModel func() string) *OllamaService {
	return &OllamaService{
		getBaseURL: getBaseURL,
		getModel:   getModel,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OllamaService) client() (*api.Client, error) {
	base, err := url.Parse(strings.TrimRight(o.getBaseURL(), "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url: %w", err)
	}
	return api.NewClient(base, o.httpClient), nil
}

func (o *OllamaService) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	client, err := o.client()
	if err != nil {
		return "", err
	}

	stream := false
	req := &api.GenerateRequest{
		Model:   o.getModel(),
		System:  sentimentPrompt,
		Prompt:  text,
		Stream:  &stream,
		Options: map[string]any{"temperature": 0},
	}

	var sb strings.Builder
	err = client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama request failed: %w", err)
	}

	return ParseSentiment(sb.String()), nil
}

// Ping checks that the configured server answers.
func (o *OllamaService) Ping(ctx context.Context) error {
	client, err := o.client()
	if err != nil {
		return err
	}
	return client.Heartbeat(ctx)
}

// ListModels returns the model names installed on the configured server.
func (o *OllamaService) ListModels(ctx context.Context) ([]string, error) {
	client, err := o.client()
	if err != nil {
		return nil, err
	}

	resp, err := client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama list failed: %w", err)
	}

	names := make([]string, 0, len(resp.Models))
	for _, m := range resp.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
