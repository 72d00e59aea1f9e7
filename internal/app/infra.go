package app

import (
	"context"

	"storefront-auth/internal/config"
	"storefront-auth/internal/logger"
	"storefront-auth/internal/redis"
	"storefront-auth/internal/store"
)

type Infra struct {
	Store *store.Client
	Redis *redis.Client
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	storeClient, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, err
	}

	if err := storeClient.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	logger.Info("document store ready", nil)

	redisClient, err := redis.New(cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, err
	}

	logger.Info("redis ready", nil)

	return &Infra{
		Store: storeClient,
		Redis: redisClient,
	}, nil
}
