package services

import (
	"context"
	"math"

	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

const wholesaleRatio = 0.7

// pricingStore is the product storage used by Price Sync.
type pricingStore interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	UpdatePrices(ctx context.Context, id string, prices models.Prices) error
}

type pricingService struct {
	products pricingStore
}

func NewPricingService(products pricingStore) *pricingService {
	return &pricingService{products: products}
}

// DiscountedPrices recomputes the effective and wholesale price for discount (percent).
// With no discount an already-set wholesale price is kept.
func DiscountedPrices(current models.Prices, discount float64) models.Prices {
	discount = math.Max(0, math.Min(100, discount))
	p := current
	p.Discount = discount
	if discount > 0 {
		p.EffectivePrice = math.Round(current.Retail * (1 - discount/100))
		p.Wholesale = math.Round(p.EffectivePrice * wholesaleRatio)
		return p
	}
	p.EffectivePrice = current.Retail
	if p.Wholesale == 0 {
		p.Wholesale = math.Round(current.Retail * wholesaleRatio)
	}
	return p
}

// SyncProductDiscount writes the banner discount onto the product's price fields.
// Read-then-write; concurrent syncs for the same product are last-write-wins.
func (s *pricingService) SyncProductDiscount(ctx context.Context, productID string, discount float64) error {
	log := logger.FromContext(ctx)

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	prices := DiscountedPrices(p.Prices, discount)
	if err := s.products.UpdatePrices(ctx, productID, prices); err != nil {
		return err
	}

	log.Info("product discount synced",
		"product_id", productID,
		"discount", prices.Discount,
		"effective_price", prices.EffectivePrice,
		"wholesale", prices.Wholesale)
	return nil
}
