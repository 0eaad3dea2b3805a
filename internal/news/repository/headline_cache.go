package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"newspulse-backend/internal/news/domain"

	"github.com/redis/go-redis/v9"
)

type redisHeadlineCache struct {
	rdb redis.UniversalClient
}

func NewRedisHeadlineCache(rdb redis.UniversalClient) HeadlineCache {
	return &redisHeadlineCache{rdb: rdb}
}

func (c *redisHeadlineCache) Get(ctx context.Context, key string) ([]domain.Article, bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis GET %s: %w", key, err)
	}

	var articles []domain.Article
	if err := json.Unmarshal(raw, &articles); err != nil {
		return nil, false, fmt.Errorf("decode cached headlines: %w", err)
	}
	return articles, true, nil
}

func (c *redisHeadlineCache) Set(ctx context.Context, key string, articles []domain.Article, ttl time.Duration) error {
	raw, err := json.Marshal(articles)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis SET %s: %w", key, err)
	}
	return nil
}
