package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/storefront-banners/infra/cloudrun"
	"github.com/GregMSThompson/storefront-banners/infra/docker"
	"github.com/GregMSThompson/storefront-banners/infra/firestore"
	"github.com/GregMSThompson/storefront-banners/infra/memorystore"
	"github.com/GregMSThompson/storefront-banners/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore, create the database and the banner/product query indexes
		db, err := firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// leaderboard cache, skipped when redis:enabled is false
		cache, err := memorystore.SetupRedis(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx, prov)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, cache, repo, db)
		if err != nil {
			return err
		}

		return nil
	})
}
