package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adityakashyap5047/Evix/pkg/database"
	"github.com/adityakashyap5047/Evix/pkg/redis"
	"github.com/adityakashyap5047/Evix/pkg/response"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db    *database.PostgresDB
	cache *redis.Client
}

// NewHealthHandler creates a new HealthHandler. cache may be nil when Redis
// is disabled.
func NewHealthHandler(db *database.PostgresDB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "ok"})
}

// Ready handles GET /ready - verifies the backing stores are reachable
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()

	checks := gin.H{"database": "ok"}
	healthy := true

	if err := h.db.HealthCheck(ctx); err != nil {
		checks["database"] = err.Error()
		healthy = false
	}
	if h.cache != nil {
		checks["redis"] = "ok"
		if err := h.cache.HealthCheck(ctx); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Data:    checks,
			Error:   "dependencies unavailable",
			Status:  http.StatusServiceUnavailable,
		})
		return
	}
	response.Success(c, checks)
}
