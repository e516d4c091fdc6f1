// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/festy23/evidence_bot/internal/config"
	"github.com/festy23/evidence_bot/internal/githubapi"
	"github.com/festy23/evidence_bot/internal/health"
	"github.com/festy23/evidence_bot/internal/llm"
	"github.com/festy23/evidence_bot/internal/middleware"
	queryRouter "github.com/festy23/evidence_bot/internal/query/router"
	"github.com/festy23/evidence_bot/pkg/logger"
)

func main() {
	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Fatalw("server stopped with error", "error", err)
	}
}

func run(cfg config.Config, sugar *zap.SugaredLogger) error {
	fetcher, err := githubapi.New(cfg.GitHub, sugar)
	if err != nil {
		return fmt.Errorf("create GitHub client: %w", err)
	}
	completer := llm.New(cfg.LLM, sugar)
	if cfg.LLM.APIKey == "" {
		sugar.Warnw("LLM_API_KEY is not set; /query, /report and /intent will answer 503")
	}

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      newRouter(cfg, fetcher, completer, sugar),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("server starting",
			"addr", srv.Addr,
			"repository", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo,
			"model", cfg.LLM.Model,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	sugar.Infow("server stopped")
	return nil
}

// newRouter wires middleware, the health check and the query routes.
func newRouter(
	cfg config.Config,
	fetcher githubapi.Fetcher,
	completer llm.Completer,
	sugar *zap.SugaredLogger,
) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(sugar),
		middleware.Logger(sugar),
		middleware.CORS(cfg.CORS),
	)

	r.GET("/health", health.New(fetcher, sugar).Check)
	queryRouter.RegisterRoutes(r, fetcher, completer, cfg.Audit, sugar)

	return r
}
