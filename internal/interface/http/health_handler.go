package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eventku/auth-api/pkg/response"
)

type HealthHandler struct {
	Pool *pgxpool.Pool
	RDB  *redis.Client
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{Pool: pool, RDB: rdb}
}

// Check GET /api/health pings the backing stores.
func (h *HealthHandler) Check(c *gin.Context) {
	status := map[string]string{"postgres": "ok", "redis": "ok"}
	healthy := true

	if h.Pool != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		if err := h.Pool.Ping(ctx); err != nil {
			status["postgres"] = err.Error()
			healthy = false
		}
		cancel()
	}
	if h.RDB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		if err := h.RDB.Ping(ctx).Err(); err != nil {
			status["redis"] = err.Error()
			healthy = false
		}
		cancel()
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "degraded", status)
		return
	}
	response.Success(c, http.StatusOK, status, "healthy")
}
