package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	goredis "github.com/redis/go-redis/v9"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db    *gorm.DB
	redis *goredis.Client
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(db *gorm.DB, redis *goredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Live reports process liveness.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the service can reach its dependencies.
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			checks["postgres"] = "unreachable"
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "unreachable"
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"status": checks})
}
