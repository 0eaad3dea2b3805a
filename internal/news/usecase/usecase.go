package usecase

import (
	"context"
	"errors"

	"newspulse-backend/internal/news/domain"
	"newspulse-backend/pkg/ai"
	"newspulse-backend/pkg/gnews"
	"newspulse-backend/pkg/keywords"
)

var (
	ErrInvalidCategory      = errors.New("invalid category")
	ErrArticleURLRequired   = errors.New("article url is required")
	ErrSentimentUnavailable = errors.New("sentiment analysis is not configured")
)

// NewsUsecase defines the dashboard's news operations
type NewsUsecase interface {
	// GetHeadlines defaults to the technology topic when category is empty
	GetHeadlines(ctx context.Context, category, keyword string) ([]domain.Article, error)
	// GetKeywords tallies the most frequent words in the current headlines' titles
	GetKeywords(ctx context.Context, category, keyword string) ([]keywords.Count, error)
	AnalyzeSentiment(ctx context.Context, text string) (ai.Sentiment, error)

	// ListSaved filters by a fuzzy query when query is non-empty
	ListSaved(ctx context.Context, userID, query string) ([]*domain.SavedArticle, error)
	SaveArticle(ctx context.Context, userID string, article domain.Article) (*domain.SavedArticle, error)
	DeleteSaved(ctx context.Context, userID, id string) error
}

// HeadlineFetcher is satisfied by *gnews.Client
type HeadlineFetcher interface {
	TopHeadlines(ctx context.Context, q gnews.Query) ([]gnews.Article, error)
}
