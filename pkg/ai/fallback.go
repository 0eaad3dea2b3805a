package ai

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"strings"
)

// FallbackService tries the local Ollama model first and falls back to the
// hosted provider when it is unreachable or fails.
type FallbackService struct {
	ollama    SentimentService
	secondary SentimentService
}

func NewFallbackService(ollama, secondary SentimentService) *FallbackService {
	return &FallbackService{
		ollama:    ollama,
		secondary: secondary,
	}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{"connection refused", "no such host", "network is unreachable", "connection reset", "timeout", "dial tcp", "eof"} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

func (f *FallbackService) ClassifySentiment(ctx context.Context, text string) (Sentiment, error) {
	if f.ollama != nil {
		result, err := f.ollama.ClassifySentiment(ctx, text)
		if err == nil {
			return result, nil
		}
		if isConnectionError(err) {
			log.Printf("[AI] Ollama unreachable: %v, falling back", err)
		} else {
			log.Printf("[AI] Ollama error: %v, falling back", err)
		}
	}

	if f.secondary != nil {
		result, err := f.secondary.ClassifySentiment(ctx, text)
		if err != nil {
			return "", fmt.Errorf("fallback sentiment failed: %w", err)
		}
		return result, nil
	}

	return "", fmt.Errorf("no AI provider available for sentiment")
}
