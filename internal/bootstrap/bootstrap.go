package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	"github.com/GregMSThompson/storefront-banners/internal/cache"
	"github.com/GregMSThompson/storefront-banners/internal/config"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Redis     *redis.Client // nil when REDISURL is unset
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
	if err != nil {
		return bs, err
	}

	if cfg.RedisURL != "" {
		bs.Redis, err = cache.Connect(applicationCtx, cfg.RedisURL)
		if err != nil {
			// trending falls back to uncached counts
			bs.Log.Warn("redis unavailable, leaderboard cache disabled", "error", err)
			bs.Redis = nil
		}
	}

	return bs, nil
}

func (bs *Bootstrap) Close() error {
	var errList []error
	if bs.Redis != nil {
		errList = append(errList, bs.Redis.Close())
	}
	if bs.Firestore != nil {
		errList = append(errList, bs.Firestore.Close())
	}
	return errors.Join(errList...)
}
