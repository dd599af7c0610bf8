package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

type viewCounter interface {
	TopViewed(ctx context.Context, since *time.Time, limit int) ([]dto.ProductViewCount, error)
}

type leaderboardStore interface {
	Get(ctx context.Context, key string) ([]dto.ProductViewCount, bool, error)
	Set(ctx context.Context, key string, rows []dto.ProductViewCount) error
}

// cachedViewCounter serves trending leaderboards from the cache and computes them
// from next on a miss. Cache failures are logged and bypassed.
type cachedViewCounter struct {
	next  viewCounter
	cache leaderboardStore
}

func NewCachedViewCounter(next viewCounter, cache leaderboardStore) *cachedViewCounter {
	return &cachedViewCounter{next: next, cache: cache}
}

func (c *cachedViewCounter) TopViewed(ctx context.Context, since *time.Time, limit int) ([]dto.ProductViewCount, error) {
	log := logger.FromContext(ctx)
	key := leaderboardKey(since, limit)

	rows, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		log.Warn("leaderboard cache read failed", "key", key, "error", err)
	} else if ok {
		return rows, nil
	}

	rows, err = c.next.TopViewed(ctx, since, limit)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, rows); err != nil {
		log.Warn("leaderboard cache write failed", "key", key, "error", err)
	}
	return rows, nil
}

// leaderboardKey buckets the window start to the minute so one entry serves
// every request inside that minute.
func leaderboardKey(since *time.Time, limit int) string {
	if since == nil {
		return fmt.Sprintf("all:%d", limit)
	}
	return fmt.Sprintf("%d:%d", since.UTC().Truncate(time.Minute).Unix(), limit)
}
