package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// ErrCacheMiss signals the key is absent or expired.
var ErrCacheMiss = errors.New(constants.ErrCodeNotFound, 404, "cache miss")

// MetricCache stores fetched metric payloads keyed by tenant and metric type.
// Values are JSON documents as returned by the upstream backend.
type MetricCache struct {
	client *goredis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewMetricCache creates a MetricCache with the given default TTL. A zero ttl
// falls back to constants.DefaultMetricCacheTTL.
func NewMetricCache(client *goredis.Client, ttl time.Duration, log logger.Logger) *MetricCache {
	if ttl <= 0 {
		ttl = constants.DefaultMetricCacheTTL
	}
	return &MetricCache{
		client: client,
		ttl:    ttl,
		log:    log.WithComponent("metric_cache"),
	}
}

func metricKey(tenantID string, metricType constants.MetricType) string {
	return fmt.Sprintf("tenant:metric:%s:%s", tenantID, metricType)
}

// Get returns the cached payload for (tenantID, metricType), or ErrCacheMiss.
func (c *MetricCache) Get(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error) {
	data, err := c.client.Get(ctx, metricKey(tenantID, metricType)).Bytes()
	if err == goredis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	return data, nil
}

// Set stores a payload under (tenantID, metricType) with the default TTL.
func (c *MetricCache) Set(ctx context.Context, tenantID string, metricType constants.MetricType, payload []byte) error {
	if !json.Valid(payload) {
		return errors.ErrBadPayload(fmt.Errorf("refusing to cache invalid JSON"))
	}
	if err := c.client.Set(ctx, metricKey(tenantID, metricType), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops a single (tenantID, metricType) entry.
func (c *MetricCache) Invalidate(ctx context.Context, tenantID string, metricType constants.MetricType) error {
	if err := c.client.Del(ctx, metricKey(tenantID, metricType)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// InvalidateTenant drops every cached metric for a tenant. Used when a tenant's
// integration changes and stale payloads must not be served.
func (c *MetricCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	pattern := fmt.Sprintf("tenant:metric:%s:*", tenantID)
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("cache invalidate tenant: %w", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		c.log.Debug(ctx, "invalidated tenant metric cache",
			logger.String("tenant_id", tenantID), logger.Int("keys", deleted))
	}
	return nil
}
