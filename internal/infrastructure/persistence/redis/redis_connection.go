// Package redis provides Redis connection management and the metric payload
// cache.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mspsec/riskboard/internal/config"
	"github.com/mspsec/riskboard/pkg/logger"
)

// NewClient creates the Redis client and verifies connectivity.
func NewClient(cfg *config.RedisConfig, log logger.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	log.Info(context.Background(), "connected to redis", logger.String("addr", cfg.Addr))
	return client, nil
}
