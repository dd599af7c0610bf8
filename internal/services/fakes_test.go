package services

import (
	"context"
	"sort"
	"time"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
)

// --- banners ---

type fakeBannerStore struct {
	banners   map[string]*models.Banner
	writes    int
	listErr   error
	updateErr error
	orders    map[string]int
}

func newFakeBannerStore(bs ...*models.Banner) *fakeBannerStore {
	f := &fakeBannerStore{banners: map[string]*models.Banner{}}
	for _, b := range bs {
		cp := *b
		f.banners[b.ID] = &cp
	}
	return f
}

func (f *fakeBannerStore) Create(_ context.Context, b *models.Banner) error {
	if _, ok := f.banners[b.ID]; ok {
		return errs.NewAlreadyExistsError("banner already exists")
	}
	f.writes++
	cp := *b
	f.banners[b.ID] = &cp
	return nil
}

func (f *fakeBannerStore) Get(_ context.Context, id string) (*models.Banner, error) {
	b, ok := f.banners[id]
	if !ok {
		return nil, errs.NewNotFoundError("banner not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBannerStore) sorted(keep func(*models.Banner) bool) []*models.Banner {
	out := []*models.Banner{}
	for _, b := range f.banners {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (f *fakeBannerStore) List(_ context.Context) ([]*models.Banner, error) {
	return f.sorted(func(*models.Banner) bool { return true }), f.listErr
}

func (f *fakeBannerStore) ListActive(_ context.Context) ([]*models.Banner, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.sorted(func(b *models.Banner) bool { return b.IsActive }), nil
}

func (f *fakeBannerStore) Update(_ context.Context, b *models.Banner) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.writes++
	cp := *b
	f.banners[b.ID] = &cp
	return nil
}

func (f *fakeBannerStore) Delete(_ context.Context, id string) error {
	delete(f.banners, id)
	return nil
}

func (f *fakeBannerStore) ExpireStale(_ context.Context, now time.Time) (int, error) {
	n := 0
	for _, b := range f.banners {
		if b.ExpiredAt(now) {
			b.IsActive = false
			b.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

func (f *fakeBannerStore) BulkUpdateOrder(_ context.Context, orders map[string]int) error {
	for id := range orders {
		if _, ok := f.banners[id]; !ok {
			return errs.NewNotFoundError("banner not found: " + id)
		}
	}
	f.orders = orders
	for id, o := range orders {
		f.banners[id].Order = o
	}
	return nil
}

// --- products ---

type fakeProductStore struct {
	products  map[string]*models.Product
	getErr    error
	listErr   error
	updateErr error
	updates   map[string]models.Prices
	queries   []dto.ProductQuery
}

func newFakeProductStore(ps ...models.Product) *fakeProductStore {
	f := &fakeProductStore{products: map[string]*models.Product{}, updates: map[string]models.Prices{}}
	for _, p := range ps {
		cp := p
		f.products[p.ID] = &cp
	}
	return f
}

func (f *fakeProductStore) Get(_ context.Context, id string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.products[id]
	if !ok {
		return nil, errs.NewNotFoundError("product not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductStore) ListActive(_ context.Context, q dto.ProductQuery) ([]models.Product, error) {
	f.queries = append(f.queries, q)
	if f.listErr != nil {
		return nil, f.listErr
	}
	ids := map[string]bool{}
	for _, id := range q.IDs {
		ids[id] = true
	}
	out := []models.Product{}
	for _, p := range f.products {
		if !p.IsActive {
			continue
		}
		if q.CategoryID != "" && p.CategoryID != q.CategoryID {
			continue
		}
		if len(ids) > 0 && !ids[p.ID] {
			continue
		}
		if q.OnlyDiscount && p.Prices.Discount <= 0 {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if q.OrderBy == "discount" {
			return out[i].Prices.Discount > out[j].Prices.Discount
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeProductStore) UpdatePrices(_ context.Context, id string, prices models.Prices) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.products[id]
	if !ok {
		return errs.NewNotFoundError("product not found")
	}
	p.Prices = prices
	f.updates[id] = prices
	return nil
}

// --- categories ---

type fakeCategoryStore struct {
	categories map[string]*models.Category
}

func (f *fakeCategoryStore) Get(_ context.Context, id string) (*models.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, errs.NewNotFoundError("category not found")
	}
	cp := *c
	return &cp, nil
}

// --- views ---

type fakeViewCounter struct {
	rows      []dto.ProductViewCount
	err       error
	lastSince *time.Time
	lastLimit int
}

func (f *fakeViewCounter) TopViewed(_ context.Context, since *time.Time, limit int) ([]dto.ProductViewCount, error) {
	f.lastSince = since
	f.lastLimit = limit
	return f.rows, f.err
}

// --- pricing ---

type fakeDiscountSyncer struct {
	calls    int
	product  string
	discount float64
	err      error
}

func (f *fakeDiscountSyncer) SyncProductDiscount(_ context.Context, productID string, discount float64) error {
	f.calls++
	f.product = productID
	f.discount = discount
	return f.err
}

// --- helpers ---

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)


func products(n int, base time.Time) []models.Product {
	out := make([]models.Product, n)
	for i := range out {
		out[i] = models.Product{
			ID:        "p" + string(rune('a'+i)),
			Name:      "Product " + string(rune('A'+i)),
			Slug:      "product-" + string(rune('a'+i)),
			IsActive:  true,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
	}
	return out
}
