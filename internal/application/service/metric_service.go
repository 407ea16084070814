// Package service implements the application use cases on top of the domain
// models and infrastructure ports.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
	"github.com/mspsec/riskboard/internal/infrastructure/persistence/redis"
	"github.com/mspsec/riskboard/pkg/constants"
	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// RawFetcher fetches one validated metric payload from the metrics backend.
type RawFetcher interface {
	FetchRaw(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error)
}

// PayloadCache is the cache port for metric payloads.
type PayloadCache interface {
	Get(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error)
	Set(ctx context.Context, tenantID string, metricType constants.MetricType, payload []byte) error
	InvalidateTenant(ctx context.Context, tenantID string) error
}

// MetricService serves metric payloads by (tenantID, metricType), caching
// fetches and coalescing concurrent requests for the same key.
type MetricService interface {
	// Fetch returns the payload for the key, from cache when fresh.
	Fetch(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error)
	// Invalidate drops the tenant's cached payloads and advances its
	// generation, so in-flight fetches started earlier cannot repopulate
	// the cache with pre-mutation data.
	Invalidate(ctx context.Context, tenantID string) error
}

type metricServiceImpl struct {
	fetcher RawFetcher
	cache   PayloadCache
	group   singleflight.Group
	gens    sync.Map // tenantID -> *atomic.Uint64
	metrics *monitoring.Metrics
	logger  logger.Logger
}

// NewMetricService creates the metric fetch+cache service.
func NewMetricService(fetcher RawFetcher, cache PayloadCache, metrics *monitoring.Metrics, log logger.Logger) MetricService {
	return &metricServiceImpl{
		fetcher: fetcher,
		cache:   cache,
		metrics: metrics,
		logger:  log.WithComponent("metric_service"),
	}
}

func (s *metricServiceImpl) Fetch(ctx context.Context, tenantID string, metricType constants.MetricType) ([]byte, error) {
	if payload, err := s.cache.Get(ctx, tenantID, metricType); err == nil {
		s.metrics.RecordCacheLookup(string(metricType), true)
		return payload, nil
	}
	s.metrics.RecordCacheLookup(string(metricType), false)

	key := fmt.Sprintf("%s:%s", tenantID, metricType)
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		gen := s.generation(tenantID).Load()

		start := time.Now()
		payload, err := s.fetcher.FetchRaw(ctx, tenantID, metricType)
		if err != nil {
			s.metrics.RecordUpstreamFetch(string(metricType), "error", time.Since(start))
			return nil, err
		}
		s.metrics.RecordUpstreamFetch(string(metricType), "ok", time.Since(start))

		// The tenant mutated while this fetch was in flight. Serve the
		// payload but keep it out of the cache.
		if s.generation(tenantID).Load() != gen {
			s.logger.Debug(ctx, "stale fetch not cached",
				logger.String("tenant_id", tenantID),
				logger.String("metric_type", string(metricType)))
			return payload, nil
		}

		if err := s.cache.Set(ctx, tenantID, metricType, payload); err != nil {
			s.logger.Warn(ctx, "failed to cache metric payload", logger.Error(err),
				logger.String("tenant_id", tenantID),
				logger.String("metric_type", string(metricType)))
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (s *metricServiceImpl) Invalidate(ctx context.Context, tenantID string) error {
	s.generation(tenantID).Add(1)
	if err := s.cache.InvalidateTenant(ctx, tenantID); err != nil {
		return err
	}
	s.logger.Info(ctx, "metric cache invalidated", logger.String("tenant_id", tenantID))
	return nil
}

func (s *metricServiceImpl) generation(tenantID string) *atomic.Uint64 {
	if g, ok := s.gens.Load(tenantID); ok {
		return g.(*atomic.Uint64)
	}
	g, _ := s.gens.LoadOrStore(tenantID, new(atomic.Uint64))
	return g.(*atomic.Uint64)
}

// FetchTyped fetches and decodes a metric payload into its element type.
func FetchTyped[T any](ctx context.Context, svc MetricService, tenantID string, metricType constants.MetricType) ([]T, error) {
	payload, err := svc.Fetch(ctx, tenantID, metricType)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, errors.ErrBadPayload(err)
	}
	return out, nil
}

// compile-time check that the Redis cache satisfies the port.
var _ PayloadCache = (*redis.MetricCache)(nil)
