// Package router provides query module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/evidence_bot/internal/config"
	"github.com/festy23/evidence_bot/internal/githubapi"
	"github.com/festy23/evidence_bot/internal/llm"
	"github.com/festy23/evidence_bot/internal/query/handler"
	"github.com/festy23/evidence_bot/internal/query/service"
)

// RegisterRoutes registers query module routes.
func RegisterRoutes(
	r *gin.Engine,
	fetcher githubapi.Fetcher,
	completer llm.Completer,
	cfg config.AuditConfig,
	logger *zap.SugaredLogger,
	opts ...service.Option,
) {
	svc := service.New(fetcher, completer, cfg, logger, opts...)
	h := handler.New(svc, logger)

	r.POST("/query", h.Query)
	r.GET("/audit", h.Audit)
	r.POST("/report", h.Report)
	r.POST("/intent", h.ExtractIntent)
}
