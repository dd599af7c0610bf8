package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/storefront-banners/internal/handlers"
	"github.com/GregMSThompson/storefront-banners/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	bh := handlers.NewBannerHandlers(deps)
	ph := handlers.NewProductHandlers(deps)

	r.Get("/home/banners", bh.HomeBanners)
	r.Mount("/banners", bh.BannerRoutes())
	r.Mount("/products", ph.ProductRoutes())
	return r
}
