package services

import (
	"strings"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/helpers"
)

// ApplyPatch merges patch over existing; the patch wins wherever it carries a value.
// Both the full and partial update paths go through here.
func ApplyPatch(existing models.Banner, patch dto.BannerPatch) models.Banner {
	b := existing
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.SourceType != nil {
		b.SourceType = *patch.SourceType
	}
	if patch.ContentType != nil {
		b.ContentType = *patch.ContentType
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.ClearImage {
		b.Image = nil
	}
	if patch.Image != nil {
		img := *patch.Image
		b.Image = &img
	}
	if patch.ClearMobile {
		b.MobileImage = nil
	}
	if patch.MobileImage != nil {
		img := *patch.MobileImage
		b.MobileImage = &img
	}
	if patch.Order != nil {
		b.Order = *patch.Order
	}
	if patch.IsActive != nil {
		b.IsActive = *patch.IsActive
	}
	if patch.ClearStartDate {
		b.StartDate = nil
	}
	if patch.StartDate != nil {
		t := *patch.StartDate
		b.StartDate = &t
	}
	if patch.ClearEndDate {
		b.EndDate = nil
	}
	if patch.EndDate != nil {
		t := *patch.EndDate
		b.EndDate = &t
	}

	if b.SourceType == "" {
		b.SourceType = models.SourceManual
	}
	b.Content = applyAutoDefaults(b.ContentType, b.Content.Normalize(b.ContentType))
	return b
}

func applyAutoDefaults(contentType string, c models.BannerContent) models.BannerContent {
	switch contentType {
	case models.ContentTrending, models.ContentNewArrivals, models.ContentOffer:
	default:
		return c
	}
	cfg := helpers.Value(c.Auto)
	if cfg.Limit <= 0 {
		cfg.Limit = dto.DefaultAutoLimit
	}
	if cfg.Period == "" {
		cfg.Period = dto.DefaultAutoPeriod
	}
	c.Auto = &cfg
	return c
}

// ValidateForActivation merges patch over existing (nil for a new banner) and returns
// every rule the result breaks. An empty result means the banner may be activated.
func ValidateForActivation(existing *models.Banner, patch dto.BannerPatch, now time.Time) []string {
	base := models.Banner{}
	if existing != nil {
		base = *existing
	}
	merged := ApplyPatch(base, patch)
	return activationViolations(&merged, now)
}

func activationViolations(b *models.Banner, now time.Time) []string {
	violations := []string{}
	if strings.TrimSpace(b.Name) == "" {
		violations = append(violations, "name is required")
	}
	if strings.TrimSpace(b.ImageURL()) == "" {
		violations = append(violations, "image url is required")
	}
	if b.EndDate != nil && b.EndDate.Before(now) {
		violations = append(violations, "end date must not be in the past")
	}
	switch b.ContentType {
	case models.ContentOffer:
		if o := b.Content.Offer; o != nil && o.ValidUntil != nil && o.ValidUntil.Before(now) {
			violations = append(violations, "offer valid-until date must not be in the past")
		}
	case models.ContentProduct:
		if b.Content.ProductID() == "" {
			violations = append(violations, "product is required for product banners")
		}
	case models.ContentCategory:
		if b.Content.CategoryID() == "" {
			violations = append(violations, "category is required for category banners")
		}
	}
	return violations
}
