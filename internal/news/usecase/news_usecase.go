package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"newspulse-backend/internal/news/domain"
	"newspulse-backend/internal/news/repository"
	recipientdomain "newspulse-backend/internal/recipient/domain"
	"newspulse-backend/pkg/ai"
	"newspulse-backend/pkg/fuzzy"
	"newspulse-backend/pkg/gnews"
	"newspulse-backend/pkg/keywords"

	"github.com/samber/lo"
)

type Options struct {
	Lang     string
	Country  string
	CacheTTL time.Duration
}

type newsUsecase struct {
	fetcher   HeadlineFetcher
	cache     repository.HeadlineCache
	saved     repository.SavedArticleRepository
	sentiment ai.SentimentService
	opts      Options
}

// NewNewsUsecase accepts a nil cache and a nil sentiment service.
func NewNewsUsecase(fetcher HeadlineFetcher, cache repository.HeadlineCache, saved repository.SavedArticleRepository, sentiment ai.SentimentService, opts Options) NewsUsecase {
	return &newsUsecase{
		fetcher:   fetcher,
		cache:     cache,
		saved:     saved,
		sentiment: sentiment,
		opts:      opts,
	}
}

func (u *newsUsecase) GetHeadlines(ctx context.Context, category, keyword string) ([]domain.Article, error) {
	topic := recipientdomain.DefaultCategory
	if strings.TrimSpace(category) != "" {
		parsed, err := recipientdomain.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCategory, err)
		}
		topic = parsed
	}
	keyword = strings.TrimSpace(keyword)

	key := u.cacheKey(topic, keyword)
	if u.cache != nil {
		cached, found, err := u.cache.Get(ctx, key)
		if err != nil {
			log.Printf("[News] Cache read failed, fetching directly: %v", err)
		} else if found {
			return cached, nil
		}
	}

	fetched, err := u.fetcher.TopHeadlines(ctx, gnews.Query{
		Topic:   string(topic),
		Keyword: keyword,
		Lang:    u.opts.Lang,
		Country: u.opts.Country,
	})
	if err != nil {
		return nil, err
	}

	articles := lo.Map(fetched, func(a gnews.Article, _ int) domain.Article {
		return domain.Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			URL:         a.URL,
			Image:       a.Image,
			PublishedAt: a.PublishedAt,
			Source:      domain.Source{Name: a.Source.Name, URL: a.Source.URL},
		}
	})

	if u.cache != nil && u.opts.CacheTTL > 0 {
		if err := u.cache.Set(ctx, key, articles, u.opts.CacheTTL); err != nil {
			log.Printf("[News] Cache write failed: %v", err)
		}
	}
	return articles, nil
}

func (u *newsUsecase) cacheKey(topic recipientdomain.Category, keyword string) string {
	return fmt.Sprintf("headlines:%s:%s:%s:%s", u.opts.Lang, u.opts.Country, topic, strings.ToLower(keyword))
}

func (u *newsUsecase) GetKeywords(ctx context.Context, category, keyword string) ([]keywords.Count, error) {
	articles, err := u.GetHeadlines(ctx, category, keyword)
	if err != nil {
		return nil, err
	}
	titles := lo.Map(articles, func(a domain.Article, _ int) string { return a.Title })
	return keywords.Top(titles, keywords.DefaultLimit), nil
}

func (u *newsUsecase) AnalyzeSentiment(ctx context.Context, text string) (ai.Sentiment, error) {
	if strings.TrimSpace(text) == "" {
		return ai.SentimentNeutral, nil
	}
	if u.sentiment == nil {
		return "", ErrSentimentUnavailable
	}
	return u.sentiment.ClassifySentiment(ctx, text)
}

func (u *newsUsecase) ListSaved(ctx context.Context, userID, query string) ([]*domain.SavedArticle, error) {
	saved, err := u.saved.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return saved, nil
	}

	scores := make(map[string]float64, len(saved))
	matched := lo.Filter(saved, func(s *domain.SavedArticle, _ int) bool {
		score := fuzzy.Score(query,
			fuzzy.Field{Text: s.Article.Title, Weight: 3},
			fuzzy.Field{Text: s.Article.Description, Weight: 1},
			fuzzy.Field{Text: s.Article.Source.Name, Weight: 1},
		)
		scores[s.ID] = score
		return score > 0
	})
	sort.SliceStable(matched, func(i, j int) bool {
		return scores[matched[i].ID] > scores[matched[j].ID]
	})
	return matched, nil
}

func (u *newsUsecase) SaveArticle(ctx context.Context, userID string, article domain.Article) (*domain.SavedArticle, error) {
	article.URL = strings.TrimSpace(article.URL)
	if article.URL == "" {
		return nil, ErrArticleURLRequired
	}
	return u.saved.Save(ctx, userID, article)
}

func (u *newsUsecase) DeleteSaved(ctx context.Context, userID, id string) error {
	return u.saved.Delete(ctx, userID, id)
}
