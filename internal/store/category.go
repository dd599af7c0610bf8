package store

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/storefront-banners/internal/errs"
	"github.com/GregMSThompson/storefront-banners/internal/models"
)

type categoryStore struct {
	Client     *firestore.Client
	Collection *firestore.CollectionRef
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{
		Client:     client,
		Collection: client.Collection("categories"),
	}
}

func (cs *categoryStore) Get(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category

	doc, err := cs.Collection.Doc(id).Get(ctx)
	if err != nil {
		return nil, readErr(err, "category not found", "failed to get category")
	}
	if err := doc.DataTo(&c); err != nil {
		return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
	}
	if c.ID == "" {
		c.ID = doc.Ref.ID
	}

	return &c, nil
}
