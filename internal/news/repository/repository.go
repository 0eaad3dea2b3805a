package repository

import (
	"context"
	"time"

	"newspulse-backend/internal/news/domain"
)

// SavedArticleRepository stores users/{uid}/savedArticles
type SavedArticleRepository interface {
	// List returns newest first
	List(ctx context.Context, userID string) ([]*domain.SavedArticle, error)
	Save(ctx context.Context, userID string, article domain.Article) (*domain.SavedArticle, error)
	Delete(ctx context.Context, userID, id string) error
}

// HeadlineCache caches headline lists by query key
type HeadlineCache interface {
	// Get reports a miss with found == false and a nil error
	Get(ctx context.Context, key string) (articles []domain.Article, found bool, err error)
	Set(ctx context.Context, key string, articles []domain.Article, ttl time.Duration) error
}
