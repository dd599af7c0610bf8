package store

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
)

// Firestore caps "in" filters at 30 values.
const maxInValues = 30

type productStore struct {
	client *firestore.Client
}

func NewProductStore(client *firestore.Client) *productStore {
	return &productStore{client: client}
}

func (s *productStore) collection() *firestore.CollectionRef {
	return s.client.Collection("products")
}

func (s *productStore) Get(ctx context.Context, id string) (*models.Product, error) {
	doc, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		return nil, readErr(err, "product not found", "failed to get product")
	}
	var p models.Product
	if err := doc.DataTo(&p); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse product data", err)
	}
	if p.ID == "" {
		p.ID = doc.Ref.ID
	}
	return &p, nil
}

// ListActive lists active products matching q, newest or most discounted first.
func (s *productStore) ListActive(ctx context.Context, q dto.ProductQuery) ([]models.Product, error) {
	if len(q.IDs) > 0 {
		return s.listByIDs(ctx, q)
	}

	query := s.activeQuery(q.CategoryID)
	if q.OnlyDiscount {
		query = query.Where("prices.discount", ">", 0).OrderBy("prices.discount", firestore.Desc)
	} else {
		query = query.OrderBy("createdAt", firestore.Desc)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	return s.getAll(ctx, query)
}

func (s *productStore) activeQuery(categoryID string) firestore.Query {
	query := s.collection().Where("isActive", "==", true)
	if categoryID != "" {
		query = query.Where("categoryId", "==", categoryID)
	}
	return query
}

// listByIDs fetches in chunks; result order is not significant, callers re-rank.
func (s *productStore) listByIDs(ctx context.Context, q dto.ProductQuery) ([]models.Product, error) {
	var out []models.Product
	for start := 0; start < len(q.IDs); start += maxInValues {
		end := min(start+maxInValues, len(q.IDs))
		refs := make([]*firestore.DocumentRef, 0, end-start)
		for _, id := range q.IDs[start:end] {
			refs = append(refs, s.collection().Doc(id))
		}
		chunk, err := s.getAll(ctx, s.activeQuery(q.CategoryID).Where(firestore.DocumentID, "in", refs))
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	// stable input for the caller's rank sort
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *productStore) getAll(ctx context.Context, q firestore.Query) ([]models.Product, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list products", err)
	}
	products := make([]models.Product, 0, len(docs))
	for _, d := range docs {
		var p models.Product
		if err := d.DataTo(&p); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse product data", err)
		}
		if p.ID == "" {
			p.ID = d.Ref.ID
		}
		products = append(products, p)
	}
	return products, nil
}

// UpdatePrices writes the banner-synced price fields; retail is never touched.
func (s *productStore) UpdatePrices(ctx context.Context, id string, prices models.Prices) error {
	_, err := s.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "prices.discount", Value: prices.Discount},
		{Path: "prices.effectivePrice", Value: prices.EffectivePrice},
		{Path: "prices.wholesale", Value: prices.Wholesale},
		{Path: "updatedAt", Value: time.Now()},
	})
	if err != nil {
		return readErr(err, "product not found", "failed to update product prices")
	}
	return nil
}
