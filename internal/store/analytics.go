package store

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/GregMSThompson/storefront-banners/internal/dto"
	"github.com/GregMSThompson/storefront-banners/internal/errs"
)

type analyticsStore struct {
	client *firestore.Client
}

func NewAnalyticsStore(client *firestore.Client) *analyticsStore {
	return &analyticsStore{client: client}
}

func (s *analyticsStore) collection() *firestore.CollectionRef {
	return s.client.Collection("analytics_events")
}

// TopViewed counts product_viewed events since the given instant (nil = all time).
func (s *analyticsStore) TopViewed(ctx context.Context, since *time.Time, limit int) ([]dto.ProductViewCount, error) {
	q := s.collection().Where("type", "==", dto.EventProductViewed)
	if since != nil {
		q = q.Where("createdAt", ">=", *since)
	}

	iter := q.Select("productId").Documents(ctx)
	defer iter.Stop()

	counts := map[string]int{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to query analytics events", err)
		}
		id, _ := doc.Data()["productId"].(string)
		if id == "" {
			continue
		}
		counts[id]++
	}
	return rankViews(counts, limit), nil
}

// rankViews sorts by count descending, ties by product id, truncated to limit (0 = all).
func rankViews(counts map[string]int, limit int) []dto.ProductViewCount {
	out := make([]dto.ProductViewCount, 0, len(counts))
	for id, n := range counts {
		out = append(out, dto.ProductViewCount{ProductID: id, Views: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
