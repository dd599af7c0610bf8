package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/storefront-banners/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	BannerSvc       bannerService
	PricingSvc      pricingService
}
