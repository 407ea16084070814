// Package middleware holds the gin middleware stack: request correlation,
// authentication, observability, and per-tenant rate limiting.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mspsec/riskboard/pkg/constants"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns a correlation id to each request, honoring an inbound
// X-Request-ID when present. The id goes on both the gin context and the
// request context so logs downstream carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, id)
		ctx := context.WithValue(c.Request.Context(), constants.ContextKeyRequestID, id)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// RequestIDFrom returns the request's correlation id, or empty.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
