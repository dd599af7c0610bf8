package models

import "time"

// Source types
const (
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// Content types
const (
	ContentCustom      = "custom"
	ContentProduct     = "product"
	ContentCategory    = "category"
	ContentTrending    = "trending"
	ContentNewArrivals = "new_arrivals"
	ContentOffer       = "offer"
)

// Auto periods
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// Banner is a schedulable promotional slot stored in Firestore.
type Banner struct {
	ID          string        `firestore:"id" json:"id"`
	Name        string        `firestore:"name" json:"name"`
	SourceType  string        `firestore:"sourceType" json:"sourceType"`   // "manual","auto"
	ContentType string        `firestore:"contentType" json:"contentType"` // "custom","product","category","trending","new_arrivals","offer"
	Content     BannerContent `firestore:"content" json:"content"`
	Image       *Image        `firestore:"image" json:"image,omitempty"`
	MobileImage *Image        `firestore:"mobileImage" json:"mobileImage,omitempty"`
	Order       int           `firestore:"order" json:"order"`
	IsActive    bool          `firestore:"isActive" json:"isActive"`
	StartDate   *time.Time    `firestore:"startDate" json:"startDate"`
	EndDate     *time.Time    `firestore:"endDate" json:"endDate"`
	Clicks      int64         `firestore:"clicks" json:"clicks"`
	Impressions int64         `firestore:"impressions" json:"impressions"`
	CreatedAt   time.Time     `firestore:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `firestore:"updatedAt" json:"updatedAt"`
}

// Image is a reference to an already-uploaded asset.
type Image struct {
	URL string `firestore:"url" json:"url"`
	Alt string `firestore:"alt,omitempty" json:"alt,omitempty"`
}

// BannerContent is keyed by the owning banner's ContentType. The copy fields are shared;
// exactly one of the variant payloads is meaningful for a given content type and the
// others are cleared by Normalize on every write.
type BannerContent struct {
	Title       string `firestore:"title,omitempty" json:"title,omitempty"`
	Subtitle    string `firestore:"subtitle,omitempty" json:"subtitle,omitempty"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`
	CTAText     string `firestore:"ctaText,omitempty" json:"ctaText,omitempty"`
	CTALink     string `firestore:"ctaLink,omitempty" json:"ctaLink,omitempty"`

	Product  *ProductContent  `firestore:"product,omitempty" json:"product,omitempty"`
	Category *CategoryContent `firestore:"category,omitempty" json:"category,omitempty"`
	Auto     *AutoConfig      `firestore:"autoConfig,omitempty" json:"autoConfig,omitempty"`
	Offer    *OfferTerms      `firestore:"offer,omitempty" json:"offer,omitempty"`
}

// ProductContent references a single product, optionally advertising a discount.
type ProductContent struct {
	ProductID       string   `firestore:"productId" json:"productId"`
	DiscountPercent *float64 `firestore:"discountPercent,omitempty" json:"discountPercent,omitempty"`
}

// CategoryContent references a category. Name and Slug are a snapshot taken at write time.
type CategoryContent struct {
	CategoryID string `firestore:"categoryId" json:"categoryId"`
	Name       string `firestore:"name,omitempty" json:"name,omitempty"`
	Slug       string `firestore:"slug,omitempty" json:"slug,omitempty"`
}

// AutoConfig drives the algorithmic content types (trending, new_arrivals, offer).
type AutoConfig struct {
	Limit          int    `firestore:"limit" json:"limit"`
	Period         string `firestore:"period" json:"period"` // "day","week","month"
	CategoryFilter string `firestore:"categoryFilter,omitempty" json:"categoryFilter,omitempty"`
}

// OfferTerms only applies to the offer content type, regardless of source.
type OfferTerms struct {
	Code       string     `firestore:"code,omitempty" json:"code,omitempty"`
	ValidUntil *time.Time `firestore:"validUntil,omitempty" json:"validUntil,omitempty"`
}

// Normalize drops the variant payloads that do not belong to contentType.
func (c BannerContent) Normalize(contentType string) BannerContent {
	switch contentType {
	case ContentProduct:
		c.Category, c.Auto, c.Offer = nil, nil, nil
	case ContentCategory:
		c.Product, c.Auto, c.Offer = nil, nil, nil
	case ContentTrending, ContentNewArrivals:
		c.Product, c.Category, c.Offer = nil, nil, nil
	case ContentOffer:
		c.Product, c.Category = nil, nil
	default:
		c.Product, c.Category, c.Auto, c.Offer = nil, nil, nil, nil
	}
	return c
}

// ProductID returns the referenced product id, or "" when the banner carries none.
func (c BannerContent) ProductID() string {
	if c.Product == nil {
		return ""
	}
	return c.Product.ProductID
}

// CategoryID returns the referenced category id, or "" when the banner carries none.
func (c BannerContent) CategoryID() string {
	if c.Category == nil {
		return ""
	}
	return c.Category.CategoryID
}

// ImageURL returns the primary image url, or "" when the banner has no image.
func (b *Banner) ImageURL() string {
	if b.Image == nil {
		return ""
	}
	return b.Image.URL
}

// DisplayableAt reports whether b may be shown at now: active and inside its window.
func (b *Banner) DisplayableAt(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartDate != nil && b.StartDate.After(now) {
		return false
	}
	if b.EndDate != nil && b.EndDate.Before(now) {
		return false
	}
	return true
}

// ExpiredAt reports whether b is active but past its end date, which the sweep corrects.
func (b *Banner) ExpiredAt(now time.Time) bool {
	return b.IsActive && b.EndDate != nil && b.EndDate.Before(now)
}
