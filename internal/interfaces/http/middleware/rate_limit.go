package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mspsec/riskboard/internal/application/dto"
	"github.com/mspsec/riskboard/internal/infrastructure/monitoring"
	"github.com/mspsec/riskboard/internal/infrastructure/ratelimit"
	"github.com/mspsec/riskboard/pkg/errors"
)

// RateLimit enforces the per-tenant request budget. Requests without a tenant
// path parameter are keyed by client IP instead.
func RateLimit(limiter *ratelimit.TenantRateLimiter, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("id")
		if key == "" {
			key = c.ClientIP()
		}

		result, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			appErr := errors.ErrUnavailable("rate limiter unavailable")
			c.AbortWithStatusJSON(appErr.HTTPStatus, dto.ErrorResponse(appErr, RequestIDFrom(c)))
			return
		}

		c.Writer.Header().Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Writer.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))

		if !result.Allowed {
			metrics.RecordRateLimitHit()
			c.Writer.Header().Set("Retry-After", strconv.Itoa(int(result.RetryAfter.Seconds())+1))
			appErr := errors.ErrRateLimited("request budget exhausted for this tenant")
			c.AbortWithStatusJSON(appErr.HTTPStatus, dto.ErrorResponse(appErr, RequestIDFrom(c)))
			return
		}
		c.Next()
	}
}
