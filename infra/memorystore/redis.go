package memorystore

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/redis"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

// Cache is the provisioned leaderboard cache. URL is empty when disabled.
type Cache struct {
	Instance *redis.Instance
	URL      pulumi.StringOutput
}

func SetupRedis(ctx *pulumi.Context, prov *gcp.Provider) (*Cache, error) {
	redisCfg := config.New(ctx, "redis")
	if !redisCfg.GetBool("enabled") {
		return &Cache{URL: pulumi.String("").ToStringOutput()}, nil
	}

	gcpCfg := config.New(ctx, "gcp")
	region := gcpCfg.Require("region")
	memoryGb := redisCfg.GetInt("memorySizeGb")
	if memoryGb == 0 {
		memoryGb = 1
	}

	svc, err := projects.NewService(ctx, "redisService", &projects.ServiceArgs{
		Service: pulumi.String("redis.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	inst, err := redis.NewInstance(ctx, "leaderboardCache", &redis.InstanceArgs{
		Region:       pulumi.String(region),
		Tier:         pulumi.String("BASIC"),
		MemorySizeGb: pulumi.Int(memoryGb),
		RedisVersion: pulumi.String("REDIS_7_0"),
		DisplayName:  pulumi.String("Banner leaderboard cache"),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
	)
	if err != nil {
		return nil, err
	}

	url := pulumi.All(inst.Host, inst.Port).ApplyT(func(args []interface{}) string {
		return fmt.Sprintf("redis://%s:%d/0", args[0].(string), args[1].(int))
	}).(pulumi.StringOutput)

	return &Cache{Instance: inst, URL: url}, nil
}
