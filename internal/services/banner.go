package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

// bannerStore is the Firestore storage interface for banners.
type bannerStore interface {
	Create(ctx context.Context, b *models.Banner) error
	Get(ctx context.Context, id string) (*models.Banner, error)
	List(ctx context.Context) ([]*models.Banner, error)
	ListActive(ctx context.Context) ([]*models.Banner, error)
	Update(ctx context.Context, b *models.Banner) error
	Delete(ctx context.Context, id string) error
	ExpireStale(ctx context.Context, now time.Time) (int, error)
	BulkUpdateOrder(ctx context.Context, orders map[string]int) error
}

type productLookup interface {
	Get(ctx context.Context, id string) (*models.Product, error)
}

type categoryLookup interface {
	Get(ctx context.Context, id string) (*models.Category, error)
}

type bannerResolver interface {
	Resolve(ctx context.Context, b *models.Banner, now time.Time) (*dto.ResolvedBanner, error)
}

type discountSyncer interface {
	SyncProductDiscount(ctx context.Context, productID string, discount float64) error
}

type bannerService struct {
	store      bannerStore
	products   productLookup
	categories categoryLookup
	resolver   bannerResolver
	pricing    discountSyncer
	maxBanners int
}

func NewBannerService(store bannerStore, products productLookup, categories categoryLookup, resolver bannerResolver, pricing discountSyncer, maxBanners int) *bannerService {
	if maxBanners <= 0 {
		maxBanners = 10
	}
	return &bannerService{
		store:      store,
		products:   products,
		categories: categories,
		resolver:   resolver,
		pricing:    pricing,
		maxBanners: maxBanners,
	}
}

// writeMode selects the price sync trigger of a write path.
type writeMode int

const (
	writeFull writeMode = iota
	writePartial
)

// --- Write path ---

func (s *bannerService) CreateBanner(ctx context.Context, req dto.BannerRequest, now time.Time) (*models.Banner, error) {
	base := models.Banner{
		ID:        uuid.New().String(),
		CreatedAt: now,
	}
	return s.write(ctx, base, req.Patch(), writeFull, now, true)
}

// ReplaceBanner is the full update: every request field replaces the stored value.
func (s *bannerService) ReplaceBanner(ctx context.Context, id string, req dto.BannerRequest, now time.Time) (*models.Banner, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, *existing, req.Patch(), writeFull, now, false)
}

// PatchBanner is the partial update: only fields present in patch change.
func (s *bannerService) PatchBanner(ctx context.Context, id string, patch dto.BannerPatch, now time.Time) (*models.Banner, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.write(ctx, *existing, patch, writePartial, now, false)
}

func (s *bannerService) write(ctx context.Context, existing models.Banner, patch dto.BannerPatch, mode writeMode, now time.Time, create bool) (*models.Banner, error) {
	b := ApplyPatch(existing, patch)
	log, ctx := logger.With(ctx, "banner_id", b.ID)

	if patch.Activates() {
		if violations := activationViolations(&b, now); len(violations) > 0 {
			log.Info("banner activation rejected", "violations", violations)
			return nil, errs.NewViolationsError(violations)
		}
	}
	if err := s.snapshotCategory(ctx, &existing, &b); err != nil {
		return nil, err
	}
	b.UpdatedAt = now

	var err error
	if create {
		err = s.store.Create(ctx, &b)
	} else {
		err = s.store.Update(ctx, &b)
	}
	if err != nil {
		return nil, err
	}

	log.Debug("banner saved", "created", create, "active", b.IsActive)

	if shouldSyncDiscount(mode, patch, &b) {
		s.syncDiscount(ctx, b.Content.Product.ProductID, *b.Content.Product.DiscountPercent)
	}
	return &b, nil
}

// shouldSyncDiscount: full writes sync whenever a product banner carries a discount,
// partial writes only when they activate one.
func shouldSyncDiscount(mode writeMode, patch dto.BannerPatch, b *models.Banner) bool {
	if b.ContentType != models.ContentProduct || b.Content.ProductID() == "" || b.Content.Product.DiscountPercent == nil {
		return false
	}
	if mode == writePartial {
		return patch.Activates()
	}
	return true
}

// syncDiscount never fails the banner write that triggered it.
func (s *bannerService) syncDiscount(ctx context.Context, productID string, discount float64) {
	if s.pricing == nil {
		return
	}
	if err := s.pricing.SyncProductDiscount(ctx, productID, discount); err != nil {
		logger.FromContext(ctx).Warn("product discount sync failed",
			"product_id", productID, "discount", discount, "error", err)
	}
}

// snapshotCategory stores the referenced category's name and slug with the banner.
// A reference that no longer resolves is kept as-is.
func (s *bannerService) snapshotCategory(ctx context.Context, existing, b *models.Banner) error {
	cat := b.Content.Category
	if b.ContentType != models.ContentCategory || cat == nil || cat.CategoryID == "" || s.categories == nil {
		return nil
	}
	prev := existing.Content.Category
	if prev != nil && prev.CategoryID == cat.CategoryID && cat.Slug != "" {
		return nil
	}
	c, err := s.categories.Get(ctx, cat.CategoryID)
	if err != nil {
		var nfe *errs.NotFoundError
		if errors.As(err, &nfe) {
			return nil
		}
		return err
	}
	snap := models.CategoryContent{CategoryID: c.ID, Name: c.Name, Slug: c.Slug}
	b.Content.Category = &snap
	return nil
}

// --- Admin reads ---

func (s *bannerService) GetBanner(ctx context.Context, id string) (*models.Banner, error) {
	return s.store.Get(ctx, id)
}

func (s *bannerService) ListBanners(ctx context.Context) ([]*models.Banner, error) {
	return s.store.List(ctx)
}

// DeleteBanner removes the banner only; referenced products and categories are untouched.
func (s *bannerService) DeleteBanner(ctx context.Context, id string) error {
	if _, err := s.store.Get(ctx, id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func (s *bannerService) ReorderBanners(ctx context.Context, req dto.ReorderBannersRequest) error {
	orders := make(map[string]int, len(req.BannerOrder))
	for _, item := range req.BannerOrder {
		orders[item.BannerID] = item.Order
	}
	return s.store.BulkUpdateOrder(ctx, orders)
}

// ValidateBanner runs the activation gate for a pre-submit check without writing.
func (s *bannerService) ValidateBanner(ctx context.Context, req dto.ValidateBannerRequest, now time.Time) (dto.ValidateBannerResponse, error) {
	var existing *models.Banner
	if req.BannerID != "" {
		b, err := s.store.Get(ctx, req.BannerID)
		if err != nil {
			return dto.ValidateBannerResponse{}, err
		}
		existing = b
	}
	violations := ValidateForActivation(existing, req.Patch, now)
	return dto.ValidateBannerResponse{Valid: len(violations) == 0, Violations: violations}, nil
}

// PreviewCTALink resolves the selection and derives the link an editor would get.
func (s *bannerService) PreviewCTALink(ctx context.Context, req dto.CTALinkRequest) (dto.CTALinkResponse, error) {
	var sel dto.CTASelection
	var err error
	switch req.ContentType {
	case models.ContentProduct:
		sel.Product, err = s.lookupProduct(ctx, req.ProductID)
	case models.ContentCategory:
		sel.Category, err = s.lookupCategory(ctx, req.CategoryID)
	}
	if err != nil {
		return dto.CTALinkResponse{}, err
	}
	return dto.CTALinkResponse{CTALink: DeriveCTALink(req.ContentType, sel)}, nil
}

func (s *bannerService) lookupProduct(ctx context.Context, id string) (*models.Product, error) {
	if id == "" || s.products == nil {
		return nil, nil
	}
	p, err := s.products.Get(ctx, id)
	if err != nil {
		var nfe *errs.NotFoundError
		if errors.As(err, &nfe) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (s *bannerService) lookupCategory(ctx context.Context, id string) (*models.CategoryContent, error) {
	if id == "" || s.categories == nil {
		return nil, nil
	}
	c, err := s.categories.Get(ctx, id)
	if err != nil {
		var nfe *errs.NotFoundError
		if errors.As(err, &nfe) {
			return nil, nil
		}
		return nil, err
	}
	return &models.CategoryContent{CategoryID: c.ID, Name: c.Name, Slug: c.Slug}, nil
}
