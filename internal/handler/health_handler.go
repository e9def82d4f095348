package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/VB6Enjoyer/snakebnb/pkg/response"
	"github.com/gin-gonic/gin"
)

// PingFunc checks a dependency
type PingFunc func(ctx context.Context) error

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	checks map[string]PingFunc
}

// NewHealthHandler creates a health handler. nil checks are skipped.
func NewHealthHandler(checks map[string]PingFunc) *HealthHandler {
	active := make(map[string]PingFunc, len(checks))
	for name, check := range checks {
		if check != nil {
			active[name] = check
		}
	}
	return &HealthHandler{checks: active}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"status": "healthy"})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := make(map[string]string, len(h.checks))
	ready := true
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			ready = false
			continue
		}
		status[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Data:    status,
			Error:   &response.ErrorData{Code: "NOT_READY", Message: "dependencies unavailable"},
		})
		return
	}
	response.Success(c, status)
}
