package services

import (
	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/models"
)

// Fixed CTA targets for the algorithmic content types.
const (
	ctaProducts    = "/products"
	ctaCategories  = "/categories"
	ctaTrending    = "/products?sort=trending"
	ctaNewArrivals = "/products?sort=newest"
	ctaOffers      = "/products?filter=offers"
)

// DeriveCTALink maps a content type and its selected entities to a storefront path.
// Custom banners never derive a link; the author supplies one.
func DeriveCTALink(contentType string, sel dto.CTASelection) string {
	switch contentType {
	case models.ContentProduct:
		if sel.Product == nil || sel.Product.Slug == "" {
			return ctaProducts
		}
		return ctaProducts + "/" + sel.Product.Slug
	case models.ContentCategory:
		if sel.Category == nil || sel.Category.Slug == "" {
			return ctaCategories
		}
		return "/category/" + sel.Category.Slug
	case models.ContentTrending:
		return ctaTrending
	case models.ContentNewArrivals:
		return ctaNewArrivals
	case models.ContentOffer:
		return ctaOffers
	}
	return ""
}
