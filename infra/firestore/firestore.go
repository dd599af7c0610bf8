package firestore

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/firestore"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type indexField struct {
	path  string
	order string
}

type compositeIndex struct {
	name       string
	collection string
	fields     []indexField
}

// Composite indexes for the queries in internal/store. Single-field equality
// filters are covered by Firestore's automatic indexes.
var indexes = []compositeIndex{
	{"bannersActiveOrder", "banners", []indexField{{"isActive", "ASCENDING"}, {"order", "ASCENDING"}, {"createdAt", "ASCENDING"}}},
	{"bannersActiveEnd", "banners", []indexField{{"isActive", "ASCENDING"}, {"endDate", "ASCENDING"}}},
	{"bannersOrder", "banners", []indexField{{"order", "ASCENDING"}, {"createdAt", "ASCENDING"}}},
	{"productsActiveNewest", "products", []indexField{{"isActive", "ASCENDING"}, {"createdAt", "DESCENDING"}}},
	{"productsCategoryNewest", "products", []indexField{{"isActive", "ASCENDING"}, {"categoryId", "ASCENDING"}, {"createdAt", "DESCENDING"}}},
	{"productsActiveDiscount", "products", []indexField{{"isActive", "ASCENDING"}, {"prices.discount", "DESCENDING"}}},
	{"productsCategoryDiscount", "products", []indexField{{"isActive", "ASCENDING"}, {"categoryId", "ASCENDING"}, {"prices.discount", "DESCENDING"}}},
	{"analyticsViewsSince", "analytics_events", []indexField{{"type", "ASCENDING"}, {"createdAt", "ASCENDING"}}},
}

func SetupFirestore(ctx *pulumi.Context, prov *gcp.Provider) (*firestore.Database, error) {
	svc, err := enableFireStore(ctx, prov)
	if err != nil {
		return nil, err
	}

	db, err := createDatabase(ctx, prov, svc)
	if err != nil {
		return nil, err
	}

	if err := createIndexes(ctx, prov, db); err != nil {
		return nil, err
	}

	return db, nil
}

func enableFireStore(ctx *pulumi.Context, prov *gcp.Provider) (*projects.Service, error) {
	return projects.NewService(ctx, "firestore", &projects.ServiceArgs{
		Service: pulumi.String("firestore.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
}

func createDatabase(ctx *pulumi.Context, prov *gcp.Provider, res ...pulumi.Resource) (*firestore.Database, error) {
	gcpCfg := config.New(ctx, "gcp")
	projectID := gcpCfg.Require("project")
	region := gcpCfg.Require("region")

	return firestore.NewDatabase(ctx, "firestoreDatabase", &firestore.DatabaseArgs{
		Project:    pulumi.String(projectID),
		Name:       pulumi.String("(default)"),
		LocationId: pulumi.String(region),
		Type:       pulumi.String("FIRESTORE_NATIVE"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn(res),
	)
}

func createIndexes(ctx *pulumi.Context, prov *gcp.Provider, db *firestore.Database) error {
	for _, idx := range indexes {
		fields := firestore.IndexFieldArray{}
		for _, f := range idx.fields {
			fields = append(fields, &firestore.IndexFieldArgs{
				FieldPath: pulumi.String(f.path),
				Order:     pulumi.String(f.order),
			})
		}
		_, err := firestore.NewIndex(ctx, idx.name, &firestore.IndexArgs{
			Database:   db.Name,
			Collection: pulumi.String(idx.collection),
			QueryScope: pulumi.String("COLLECTION"),
			Fields:     fields,
		},
			pulumi.Provider(prov),
			pulumi.DependsOn([]pulumi.Resource{db}),
		)
		if err != nil {
			return fmt.Errorf("index %s: %w", idx.name, err)
		}
	}
	return nil
}
