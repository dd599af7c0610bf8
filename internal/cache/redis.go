package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
)

const leaderboardPrefix = "banners:leaderboard:"

// Connect initializes a Redis client from a redis:// URL or a plain host:port.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *leaderboardCache {
	return &leaderboardCache{client: client, ttl: ttl}
}

// Get returns the cached leaderboard for key; ok is false on a miss.
func (c *leaderboardCache) Get(ctx context.Context, key string) ([]dto.ProductViewCount, bool, error) {
	raw, err := c.client.Get(ctx, leaderboardPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var rows []dto.ProductViewCount
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *leaderboardCache) Set(ctx context.Context, key string, rows []dto.ProductViewCount) error {
	raw, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, leaderboardPrefix+key, raw, c.ttl).Err()
}
