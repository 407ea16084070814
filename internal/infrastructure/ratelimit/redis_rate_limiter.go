// Package ratelimit provides distributed per-tenant rate limiting backed by
// Redis.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mspsec/riskboard/pkg/errors"
	"github.com/mspsec/riskboard/pkg/logger"
)

// Result carries the outcome of a rate limit check.
type Result struct {
	Allowed    bool
	Limit      int64
	Remaining  int64
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Config holds rate limiter settings.
type Config struct {
	// Limit is the request budget per window.
	Limit int64
	// Window is the refill window.
	Window time.Duration
	// FailOpen allows requests through when Redis is unreachable.
	FailOpen bool
	// KeyPrefix is the Redis key prefix.
	KeyPrefix string
}

// DefaultConfig returns the default limiter settings.
func DefaultConfig() *Config {
	return &Config{
		Limit:     100,
		Window:    time.Minute,
		FailOpen:  true,
		KeyPrefix: "ratelimit",
	}
}

// Token bucket refill and take as a single atomic operation.
const tokenBucketScript = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local requested = tonumber(ARGV[3])
local now = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local tokens = tonumber(bucket[1]) or capacity
local last_refill = tonumber(bucket[2]) or now

local elapsed = now - last_refill
tokens = math.min(tokens + elapsed * rate / 1000, capacity)

local allowed = 0
if tokens >= requested then
    tokens = tokens - requested
    allowed = 1
end

local reset_ms = 0
if tokens < capacity then
    reset_ms = math.ceil((capacity - tokens) / rate * 1000)
end

redis.call('HMSET', key, 'tokens', tokens, 'last_refill', now)
redis.call('PEXPIRE', key, reset_ms + 60000)

return {allowed, math.floor(tokens), reset_ms}
`

// TenantRateLimiter enforces a per-tenant request budget using a token bucket
// stored in Redis, so the limit holds across replicas.
type TenantRateLimiter struct {
	client redis.UniversalClient
	config *Config
	logger logger.Logger
}

// NewTenantRateLimiter creates a Redis-backed per-tenant limiter.
func NewTenantRateLimiter(client redis.UniversalClient, config *Config, log logger.Logger) (*TenantRateLimiter, error) {
	if client == nil {
		return nil, errors.ErrInvalidRequest("redis client is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	log.Info(context.Background(), "tenant rate limiter initialized",
		logger.Int64("limit", config.Limit),
		logger.Duration("window", config.Window),
	)

	return &TenantRateLimiter{client: client, config: config, logger: log}, nil
}

// Allow takes one token from the tenant's bucket.
func (rl *TenantRateLimiter) Allow(ctx context.Context, tenantID string) (*Result, error) {
	return rl.AllowN(ctx, tenantID, 1)
}

// AllowN takes n tokens from the tenant's bucket.
func (rl *TenantRateLimiter) AllowN(ctx context.Context, tenantID string, n int64) (*Result, error) {
	limit := rl.config.Limit
	rate := float64(limit) / rl.config.Window.Seconds()
	now := time.Now()

	raw, err := rl.client.Eval(ctx, tokenBucketScript, []string{rl.buildKey(tenantID)},
		limit, rate, n, now.UnixMilli()).Result()
	if err != nil {
		if rl.config.FailOpen {
			rl.logger.Warn(ctx, "rate limit check failed, allowing request",
				logger.String("tenant_id", tenantID), logger.Error(err))
			return &Result{Allowed: true, Limit: limit, Remaining: limit - n, ResetAt: now.Add(rl.config.Window)}, nil
		}
		return nil, errors.ErrUnavailable("rate limiter unavailable").WithCause(err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) < 3 {
		return nil, fmt.Errorf("unexpected rate limit script result: %v", raw)
	}

	allowed := values[0].(int64) == 1
	remaining := values[1].(int64)
	resetMs := values[2].(int64)

	result := &Result{
		Allowed:   allowed,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   now.Add(time.Duration(resetMs) * time.Millisecond),
	}
	if !allowed && resetMs > 0 {
		result.RetryAfter = time.Duration(resetMs) * time.Millisecond
	}
	return result, nil
}

// Reset clears the tenant's bucket.
func (rl *TenantRateLimiter) Reset(ctx context.Context, tenantID string) error {
	if err := rl.client.Del(ctx, rl.buildKey(tenantID)).Err(); err != nil && err != redis.Nil {
		return errors.ErrUnavailable("rate limiter unavailable").WithCause(err)
	}
	return nil
}

func (rl *TenantRateLimiter) buildKey(tenantID string) string {
	return fmt.Sprintf("%s:tenant:%s", rl.config.KeyPrefix, tenantID)
}
