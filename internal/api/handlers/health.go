package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jstittsworth/contrarian-dfs/internal/services"
	"github.com/sony/gobreaker"
)

type Pinger interface {
	Ping() error
}

type HealthHandler struct {
	db    Pinger
	cache *services.CacheService
}

func NewHealthHandler(db Pinger, cache *services.CacheService) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// GetHealth is the liveness probe; it answers whenever the process is up.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "contrarian-dfs",
	})
}

// GetReady reports whether storage is reachable. The cache is informational
// only because a cache outage degrades to misses.
func (h *HealthHandler) GetReady(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		ready = false
	} else {
		checks["database"] = "ok"
	}

	switch {
	case !h.cache.Enabled():
		checks["cache"] = "disabled"
	case h.cache.BreakerState() == gobreaker.StateOpen:
		checks["cache"] = "circuit open"
	default:
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = err.Error()
		} else {
			checks["cache"] = "ok"
		}
	}

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"status": status, "checks": checks})
}
