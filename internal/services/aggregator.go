package services

import (
	"context"
	"sort"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

// ResolveBanners builds the homepage banner set at now. Expired banners are switched
// off first, so every read restores the "active implies not past its end date" rule.
func (s *bannerService) ResolveBanners(ctx context.Context, now time.Time) ([]dto.ResolvedBanner, error) {
	log := logger.FromContext(ctx)

	expired, err := s.store.ExpireStale(ctx, now)
	if err != nil {
		return nil, err
	}
	if expired > 0 {
		log.Info("expired banners deactivated", "count", expired)
	}

	active, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ResolvedBanner, 0, len(active))
	for _, b := range active {
		if !b.DisplayableAt(now) {
			continue
		}
		var rb *dto.ResolvedBanner
		if b.SourceType == models.SourceAuto {
			rb, err = s.resolver.Resolve(ctx, b, now)
		} else {
			rb, err = s.hydrateManual(ctx, b)
		}
		if err != nil {
			return nil, err
		}
		if rb == nil {
			log.Debug("banner resolved to nothing, skipped", "banner_id", b.ID, "content_type", b.ContentType)
			continue
		}
		out = append(out, *rb)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })

	for i := range out {
		if out[i].CTALink == "" {
			out[i].CTALink = DeriveCTALink(out[i].ContentType, dto.CTASelection{
				Product:  out[i].Product,
				Category: out[i].Category,
			})
		}
	}

	if len(out) > s.maxBanners {
		out = out[:s.maxBanners]
	}
	return out, nil
}

// hydrateManual dereferences a manual banner's product or category for display.
// Content is passed through unchanged; an unresolved reference just stays empty.
func (s *bannerService) hydrateManual(ctx context.Context, b *models.Banner) (*dto.ResolvedBanner, error) {
	out := baseResolved(b)
	switch b.ContentType {
	case models.ContentProduct:
		p, err := s.lookupProduct(ctx, b.Content.ProductID())
		if err != nil {
			return nil, err
		}
		out.Product = p
	case models.ContentCategory:
		c, err := s.lookupCategory(ctx, b.Content.CategoryID())
		if err != nil {
			return nil, err
		}
		if c == nil && b.Content.Category != nil && b.Content.Category.Slug != "" {
			snap := *b.Content.Category
			c = &snap
		}
		out.Category = c
	}
	return out, nil
}
