// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const checkTimeout = 5 * time.Second

// Checker probes a dependency the service cannot work without.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check requests.
type Handler struct {
	checker Checker
	logger  *zap.SugaredLogger
}

// New creates a new health handler instance.
func New(checker Checker, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		checker: checker,
		logger:  logger,
	}
}

// Response represents health check response.
type Response struct {
	Status string `json:"status"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	if err := h.checker.Ping(ctx); err != nil {
		h.logger.Warnw("health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, Response{
			Status: "unhealthy",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Status: "ok",
	})
}
