package ai

import (
	"context"
	"strings"
)

// Sentiment is the normalized label for a piece of news text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Emoji is what the dashboard shows next to an article.
func (s Sentiment) Emoji() string {
	switch s {
	case SentimentPositive:
		return "😊"
	case SentimentNegative:
		return "😞"
	default:
		return "😐"
	}
}

// ParseSentiment normalizes free-form model output. The earliest label mentioned
// wins; anything unrecognized is neutral.
func ParseSentiment(raw string) Sentiment {
	text := strings.ToLower(raw)
	best, bestIdx := SentimentNeutral, -1
	for _, s := range []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral} {
		if i := strings.Index(text, string(s)); i >= 0 && (bestIdx < 0 || i < bestIdx) {
			best, bestIdx = s, i
		}
	}
	return best
}

// SentimentService is the interface for AI sentiment classification
// Implement this interface to add new AI providers (Gemini, Ollama, OpenAI, etc.)
type SentimentService interface {
	ClassifySentiment(ctx context.Context, text string) (Sentiment, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderOpenAI ProviderType = "openai"
	ProviderAuto   ProviderType = "auto"
)

const sentimentPrompt = `You classify the sentiment of news text.
Answer with exactly one lowercase word: positive, negative or neutral.`
