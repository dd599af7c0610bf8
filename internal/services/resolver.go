package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

// catalogStore is the product listing used by the resolver.
type catalogStore interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	ListActive(ctx context.Context, q dto.ProductQuery) ([]models.Product, error)
}

// ViewCounter returns "product viewed" counts since the given instant (nil = all time),
// sorted by views descending and truncated to limit.
type ViewCounter interface {
	TopViewed(ctx context.Context, since *time.Time, limit int) ([]dto.ProductViewCount, error)
}

type contentResolver struct {
	products catalogStore
	views    ViewCounter
}

func NewContentResolver(products catalogStore, views ViewCounter) *contentResolver {
	return &contentResolver{products: products, views: views}
}

// Resolve computes the display content of b at now. A nil result with a nil error means
// the banner currently has nothing to show and must be left out.
func (r *contentResolver) Resolve(ctx context.Context, b *models.Banner, now time.Time) (*dto.ResolvedBanner, error) {
	out := baseResolved(b)

	switch b.ContentType {
	case models.ContentCustom:
		return out, nil

	case models.ContentProduct:
		return r.resolveProduct(ctx, b, out)

	case models.ContentCategory:
		if b.Content.CategoryID() == "" {
			return nil, nil
		}
		cat := *b.Content.Category
		out.Category = &cat
		return out, nil

	case models.ContentTrending:
		cfg := autoConfig(b)
		products, err := r.trending(ctx, cfg, now)
		if err != nil {
			return nil, err
		}
		return withProducts(out, products,
			"Trending Now",
			fmt.Sprintf("Most viewed products this %s", cfg.Period)), nil

	case models.ContentNewArrivals:
		products, err := r.newest(ctx, autoConfig(b))
		if err != nil {
			return nil, err
		}
		return withProducts(out, products,
			"New Arrivals",
			"Fresh additions to our collection"), nil

	case models.ContentOffer:
		cfg := autoConfig(b)
		products, err := r.products.ListActive(ctx, dto.ProductQuery{
			CategoryID:   cfg.CategoryFilter,
			OnlyDiscount: true,
			OrderBy:      "discount",
			Limit:        cfg.Limit,
		})
		if err != nil {
			return nil, err
		}
		var maxDiscount float64
		if len(products) > 0 {
			maxDiscount = products[0].Prices.Discount
		}
		return withProducts(out, products,
			fmt.Sprintf("Up to %s%% Off", strconv.FormatFloat(maxDiscount, 'f', -1, 64)),
			"Limited time offers"), nil
	}

	logger.FromContext(ctx).Debug("unknown content type, banner skipped",
		"banner_id", b.ID, "content_type", b.ContentType)
	return nil, nil
}

func (r *contentResolver) resolveProduct(ctx context.Context, b *models.Banner, out *dto.ResolvedBanner) (*dto.ResolvedBanner, error) {
	id := b.Content.ProductID()
	if id == "" {
		return nil, nil
	}
	p, err := r.products.Get(ctx, id)
	if err != nil {
		var nfe *errs.NotFoundError
		if errors.As(err, &nfe) {
			return nil, nil
		}
		return nil, err
	}
	out.Product = p
	if out.Title == "" {
		out.Title = p.Name
	}
	return out, nil
}

// trending ranks active products by views in the period window. With no usable
// leaderboard it falls back to the newest products so the slot is never empty.
func (r *contentResolver) trending(ctx context.Context, cfg models.AutoConfig, now time.Time) ([]models.Product, error) {
	log := logger.FromContext(ctx)

	var board []dto.ProductViewCount
	if r.views != nil {
		var err error
		board, err = r.views.TopViewed(ctx, periodLowerBound(cfg.Period, now), cfg.Limit)
		if err != nil {
			log.Warn("trending leaderboard unavailable, using newest products", "error", err)
			board = nil
		}
	}
	if len(board) == 0 {
		return r.newest(ctx, cfg)
	}

	ids := make([]string, len(board))
	rank := make(map[string]int, len(board))
	for i, row := range board {
		ids[i] = row.ProductID
		rank[row.ProductID] = row.Views
	}
	products, err := r.products.ListActive(ctx, dto.ProductQuery{
		CategoryID: cfg.CategoryFilter,
		IDs:        ids,
		Limit:      cfg.Limit,
	})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return r.newest(ctx, cfg)
	}

	sort.SliceStable(products, func(i, j int) bool {
		return rank[products[i].ID] > rank[products[j].ID]
	})
	return products, nil
}

func (r *contentResolver) newest(ctx context.Context, cfg models.AutoConfig) ([]models.Product, error) {
	return r.products.ListActive(ctx, dto.ProductQuery{
		CategoryID: cfg.CategoryFilter,
		OrderBy:    "createdAt",
		Limit:      cfg.Limit,
	})
}

// periodLowerBound returns the start of the trailing window; unknown periods are all-time.
func periodLowerBound(period string, now time.Time) *time.Time {
	var since time.Time
	switch period {
	case models.PeriodDay:
		since = now.Add(-24 * time.Hour)
	case models.PeriodWeek:
		since = now.AddDate(0, 0, -7)
	case models.PeriodMonth:
		since = now.AddDate(0, 0, -30)
	default:
		return nil
	}
	return &since
}

// --- Helpers ---

func autoConfig(b *models.Banner) models.AutoConfig {
	c := applyAutoDefaults(models.ContentTrending, b.Content)
	return *c.Auto
}

func baseResolved(b *models.Banner) *dto.ResolvedBanner {
	out := &dto.ResolvedBanner{
		ID:          b.ID,
		SourceType:  b.SourceType,
		ContentType: b.ContentType,
		Title:       b.Content.Title,
		Subtitle:    b.Content.Subtitle,
		Description: b.Content.Description,
		CTAText:     b.Content.CTAText,
		CTALink:     b.Content.CTALink,
		Image:       b.Image,
		MobileImage: b.MobileImage,
		Order:       b.Order,
	}
	if o := b.Content.Offer; o != nil && b.ContentType == models.ContentOffer {
		out.OfferCode = o.Code
		out.OfferValidUntil = o.ValidUntil
	}
	return out
}

// withProducts attaches products and fills title/subtitle gaps; no products drops the banner.
func withProducts(out *dto.ResolvedBanner, products []models.Product, title, subtitle string) *dto.ResolvedBanner {
	if len(products) == 0 {
		return nil
	}
	out.Products = products
	if out.Title == "" {
		out.Title = title
	}
	if out.Subtitle == "" {
		out.Subtitle = subtitle
	}
	return out
}
