package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/evidence_bot/internal/config"
	"github.com/festy23/evidence_bot/internal/githubapi"
	"github.com/festy23/evidence_bot/internal/llm"
	"github.com/festy23/evidence_bot/internal/middleware"
)

func setupRouter(t *testing.T, githubStatus int) *gin.Engine {
	t.Helper()

	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(githubStatus)
		_, _ = w.Write([]byte(`{"name": "shop", "owner": {"login": "acme"}}`))
	}))
	t.Cleanup(gh.Close)

	t.Setenv("GITHUB_OWNER", "acme")
	t.Setenv("GITHUB_REPO", "shop")
	t.Setenv("GITHUB_API_URL", gh.URL)
	t.Setenv("LLM_API_KEY", "")
	cfg := config.LoadFromEnv()
	cfg.GitHub.Timeout = 5 * time.Second
	require.NoError(t, cfg.Validate())

	sugar := zap.NewNop().Sugar()
	fetcher, err := githubapi.New(cfg.GitHub, sugar)
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	return newRouter(cfg, fetcher, llm.New(cfg.LLM, sugar), sugar)
}

func TestNewRouter_Health(t *testing.T) {
	tests := []struct {
		name         string
		githubStatus int
		wantStatus   int
	}{
		{name: "repository reachable", githubStatus: http.StatusOK, wantStatus: http.StatusOK},
		{name: "repository unreachable", githubStatus: http.StatusUnauthorized, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRouter(t, tt.githubStatus)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewRouter_QueryWithoutModelKey(t *testing.T) {
	router := setupRouter(t, http.StatusOK)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/intent", strings.NewReader(`{"query": "Show PR 42"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "http://localhost:5173")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "LLM_NOT_CONFIGURED")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	router := setupRouter(t, http.StatusOK)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
