package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"newspulse-backend/internal/news/domain"
	"newspulse-backend/pkg/ai"
	"newspulse-backend/pkg/gnews"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	articles []gnews.Article
	err      error
	queries  []gnews.Query
}

func (f *fakeFetcher) TopHeadlines(ctx context.Context, q gnews.Query) ([]gnews.Article, error) {
	f.queries = append(f.queries, q)
	return f.articles, f.err
}

type memoryCache struct {
	data   map[string][]domain.Article
	getErr error
	sets   int
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]domain.Article, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	a, ok := m.data[key]
	return a, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, key string, articles []domain.Article, ttl time.Duration) error {
	if m.data == nil {
		m.data = map[string][]domain.Article{}
	}
	m.data[key] = articles
	m.sets++
	return nil
}

type memorySaved struct {
	items map[string]*domain.SavedArticle
	order []string
}

func (m *memorySaved) List(ctx context.Context, userID string) ([]*domain.SavedArticle, error) {
	out := []*domain.SavedArticle{}
	for _, id := range m.order {
		if s, ok := m.items[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memorySaved) Save(ctx context.Context, userID string, a domain.Article) (*domain.SavedArticle, error) {
	if m.items == nil {
		m.items = map[string]*domain.SavedArticle{}
	}
	id := domain.SavedArticleID(a.URL)
	if _, exists := m.items[id]; !exists {
		m.order = append(m.order, id)
	}
	m.items[id] = &domain.SavedArticle{ID: id, Article: a, SavedAt: time.Now()}
	return m.items[id], nil
}

func (m *memorySaved) Delete(ctx context.Context, userID, id string) error {
	delete(m.items, id)
	return nil
}

type fixedSentiment struct {
	calls int
}

func (f *fixedSentiment) ClassifySentiment(ctx context.Context, text string) (ai.Sentiment, error) {
	f.calls++
	return ai.SentimentPositive, nil
}

var opts = Options{Lang: "en", Country: "us", CacheTTL: time.Minute}

func TestGetHeadlines_DefaultsAndCaches(t *testing.T) {
	fetcher := &fakeFetcher{articles: []gnews.Article{{Title: "A", URL: "https://a", Source: gnews.Source{Name: "Src"}}}}
	cache := &memoryCache{}
	uc := NewNewsUsecase(fetcher, cache, &memorySaved{}, nil, opts)

	first, err := uc.GetHeadlines(context.Background(), "", "")
	require.NoError(t, err)
	second, err := uc.GetHeadlines(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "Src", first[0].Source.Name)
	require.Len(t, fetcher.queries, 1)
	assert.Equal(t, gnews.Query{Topic: "technology", Lang: "en", Country: "us"}, fetcher.queries[0])
	assert.Equal(t, 1, cache.sets)
}

func TestGetHeadlines_CacheErrorFallsBackToFetch(t *testing.T) {
	fetcher := &fakeFetcher{articles: []gnews.Article{{Title: "A"}}}
	uc := NewNewsUsecase(fetcher, &memoryCache{getErr: errors.New("redis down")}, &memorySaved{}, nil, opts)

	articles, err := uc.GetHeadlines(context.Background(), "sports", " nba ")

	require.NoError(t, err)
	assert.Len(t, articles, 1)
	assert.Equal(t, "nba", fetcher.queries[0].Keyword)
}

func TestGetHeadlines_InvalidCategory(t *testing.T) {
	uc := NewNewsUsecase(&fakeFetcher{}, nil, &memorySaved{}, nil, opts)

	_, err := uc.GetHeadlines(context.Background(), "gossip", "")

	assert.True(t, errors.Is(err, ErrInvalidCategory))
}

func TestGetKeywords(t *testing.T) {
	fetcher := &fakeFetcher{articles: []gnews.Article{
		{Title: "Climate summit opens"},
		{Title: "Climate deal close"},
	}}
	uc := NewNewsUsecase(fetcher, nil, &memorySaved{}, nil, opts)

	counts, err := uc.GetKeywords(context.Background(), "world", "")

	require.NoError(t, err)
	require.NotEmpty(t, counts)
	assert.Equal(t, "climate", counts[0].Word)
	assert.Equal(t, 2, counts[0].Count)
}

func TestAnalyzeSentiment(t *testing.T) {
	sentiment := &fixedSentiment{}
	uc := NewNewsUsecase(&fakeFetcher{}, nil, &memorySaved{}, sentiment, opts)

	got, err := uc.AnalyzeSentiment(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentNeutral, got)
	assert.Zero(t, sentiment.calls)

	got, err = uc.AnalyzeSentiment(context.Background(), "Great news")
	require.NoError(t, err)
	assert.Equal(t, ai.SentimentPositive, got)

	_, err = NewNewsUsecase(&fakeFetcher{}, nil, &memorySaved{}, nil, opts).AnalyzeSentiment(context.Background(), "x")
	assert.True(t, errors.Is(err, ErrSentimentUnavailable))
}

func TestSavedArticles(t *testing.T) {
	saved := &memorySaved{}
	uc := NewNewsUsecase(&fakeFetcher{}, nil, saved, nil, opts)
	ctx := context.Background()

	_, err := uc.SaveArticle(ctx, "u1", domain.Article{Title: "No URL"})
	assert.True(t, errors.Is(err, ErrArticleURLRequired))

	a, err := uc.SaveArticle(ctx, "u1", domain.Article{Title: "Mars rover finds water", URL: "https://news.example/a?x=1"})
	require.NoError(t, err)
	assert.Equal(t, "https%3A%2F%2Fnews.example%2Fa%3Fx%3D1", a.ID)
	_, err = uc.SaveArticle(ctx, "u1", domain.Article{Title: "Mars rover finds water", URL: "https://news.example/a?x=1"})
	require.NoError(t, err)
	_, err = uc.SaveArticle(ctx, "u1", domain.Article{Title: "Central bank holds rates", URL: "https://news.example/b"})
	require.NoError(t, err)

	all, err := uc.ListSaved(ctx, "u1", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := uc.ListSaved(ctx, "u1", "rovr")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Mars rover finds water", found[0].Article.Title)

	require.NoError(t, uc.DeleteSaved(ctx, "u1", a.ID))
	all, _ = uc.ListSaved(ctx, "u1", "")
	assert.Len(t, all, 1)
}
