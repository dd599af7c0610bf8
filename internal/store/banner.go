package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
	"github.com/GregMSThompson/storefront-banners/pkg/logger"
)

type bannerStore struct {
	client *firestore.Client
}

func NewBannerStore(client *firestore.Client) *bannerStore {
	return &bannerStore{client: client}
}

func (s *bannerStore) collection() *firestore.CollectionRef {
	return s.client.Collection("banners")
}

func (s *bannerStore) Create(ctx context.Context, b *models.Banner) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = b.CreatedAt
	}
	_, err := s.collection().Doc(b.ID).Create(ctx, b)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errs.NewAlreadyExistsError("banner already exists")
		}
		return errs.NewDatabaseError("create", "failed to create banner", err)
	}
	return nil
}

func (s *bannerStore) Get(ctx context.Context, id string) (*models.Banner, error) {
	doc, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		return nil, readErr(err, "banner not found", "failed to get banner")
	}
	var b models.Banner
	if err := doc.DataTo(&b); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse banner data", err)
	}
	return &b, nil
}

// List returns every banner in display order, ties by creation.
func (s *bannerStore) List(ctx context.Context) ([]*models.Banner, error) {
	return s.getAll(ctx, s.collection().
		OrderBy("order", firestore.Asc).
		OrderBy("createdAt", firestore.Asc))
}

// ListActive returns banners flagged active. Firestore cannot OR a null bound, so the
// start/end window is checked by the caller.
func (s *bannerStore) ListActive(ctx context.Context) ([]*models.Banner, error) {
	return s.getAll(ctx, s.collection().
		Where("isActive", "==", true).
		OrderBy("order", firestore.Asc).
		OrderBy("createdAt", firestore.Asc))
}

func (s *bannerStore) getAll(ctx context.Context, q firestore.Query) ([]*models.Banner, error) {
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list banners", err)
	}
	banners := make([]*models.Banner, 0, len(docs))
	for _, d := range docs {
		var b models.Banner
		if err := d.DataTo(&b); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse banner data", err)
		}
		banners = append(banners, &b)
	}
	return banners, nil
}

func (s *bannerStore) Update(ctx context.Context, b *models.Banner) error {
	if b.UpdatedAt.IsZero() {
		b.UpdatedAt = time.Now()
	}
	_, err := s.collection().Doc(b.ID).Set(ctx, b)
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update banner", err)
	}
	return nil
}

func (s *bannerStore) Delete(ctx context.Context, id string) error {
	_, err := s.collection().Doc(id).Delete(ctx)
	if err != nil {
		return errs.NewDatabaseError("delete", "failed to delete banner", err)
	}
	return nil
}

// ExpireStale sets isActive=false on every active banner whose endDate is before now.
// Only isActive and updatedAt are written, so concurrent sweeps converge.
func (s *bannerStore) ExpireStale(ctx context.Context, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	iter := s.collection().
		Where("isActive", "==", true).
		Where("endDate", "<", now).
		Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, errs.NewDatabaseError("read", "failed to query expired banners", err)
		}
		refs = append(refs, doc.Ref)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		j, err := bw.Update(ref, []firestore.Update{
			{Path: "isActive", Value: false},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return 0, errs.NewDatabaseError("update", "failed to schedule banner expiry", err)
		}
		jobs = append(jobs, j)
	}
	bw.End()

	for i, j := range jobs {
		if _, err := j.Results(); err != nil {
			log.Error("failed to expire banner", "banner_id", refs[i].ID, "error", err)
			return 0, errs.NewDatabaseError("update", "failed to expire banner", err)
		}
	}
	return len(jobs), nil
}

type bulkOrderJob struct {
	bannerID string
	job      *firestore.BulkWriterJob
}

func (s *bannerStore) BulkUpdateOrder(ctx context.Context, orders map[string]int) error {
	log := logger.FromContext(ctx)
	bw := s.client.BulkWriter(ctx)
	coll := s.collection()
	now := time.Now()

	jobs := make([]bulkOrderJob, 0, len(orders))
	for bannerID, order := range orders {
		j, err := bw.Update(coll.Doc(bannerID), []firestore.Update{
			{Path: "order", Value: order},
			{Path: "updatedAt", Value: now},
		})
		if err != nil {
			bw.End()
			return errs.NewDatabaseError("update", "failed to schedule order update", err)
		}
		jobs = append(jobs, bulkOrderJob{bannerID: bannerID, job: j})
	}
	bw.End()

	for _, entry := range jobs {
		if _, err := entry.job.Results(); err != nil {
			log.Error("failed to update banner order", "banner_id", entry.bannerID, "error", err)
			if status.Code(err) == codes.NotFound {
				return errs.NewNotFoundError("banner not found: " + entry.bannerID)
			}
			return errs.NewDatabaseError("update", "failed to update banner order", err)
		}
	}
	return nil
}
