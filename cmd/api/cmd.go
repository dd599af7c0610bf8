package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GregMSThompson/storefront-banners/internal/bootstrap"
	"github.com/GregMSThompson/storefront-banners/internal/cache"
	"github.com/GregMSThompson/storefront-banners/internal/config"
	"github.com/GregMSThompson/storefront-banners/internal/handlers"
	"github.com/GregMSThompson/storefront-banners/internal/response"
	"github.com/GregMSThompson/storefront-banners/internal/router"
	"github.com/GregMSThompson/storefront-banners/internal/services"
	"github.com/GregMSThompson/storefront-banners/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg, err := config.New()
	exitOnError("config failed", err, slog.Default())
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	bstore := store.NewBannerStore(bs.Firestore)
	pstore := store.NewProductStore(bs.Firestore)
	cstore := store.NewCategoryStore(bs.Firestore)
	astore := store.NewAnalyticsStore(bs.Firestore)

	// trending leaderboard, cached when redis is configured
	var views services.ViewCounter = astore
	if bs.Redis != nil {
		views = cache.NewCachedViewCounter(astore, cache.NewLeaderboardCache(bs.Redis, cfg.LeaderboardTTL))
	}

	// services
	pserv := services.NewPricingService(pstore)
	resolver := services.NewContentResolver(pstore, views)
	bserv := services.NewBannerService(bstore, pstore, cstore, resolver, pserv, cfg.MaxBanners)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.BannerSvc = bserv
	deps.PricingSvc = pserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server starting", "addr", cfg.Addr())
	err = http.ListenAndServe(cfg.Addr(), r)
	exitOnError("server start failed", err, bs.Log)
}
