package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/curahealth/cura/backend/go-services/internal/config"
	"github.com/curahealth/cura/backend/go-services/internal/journal"
	"github.com/curahealth/cura/backend/go-services/internal/storage"
)

func testConfig(origins ...string) *config.Config {
	return &config.Config{
		Journal: config.JournalConfig{Backend: "memory", StorageKey: journal.DefaultKey, DisplayLocation: time.UTC},
		CORS:    config.CORSConfig{AllowedOrigins: origins},
	}
}

func testRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	backend := storage.NewMemoryBackend()
	store, err := journal.NewStore(backend, cfg.Journal.StorageKey)
	require.NoError(t, err)
	return newRouter(cfg, store, backend, nil)
}

func TestRouter_JournalRoundTrip(t *testing.T) {
	r := testRouter(t, testConfig("*"))

	req := httptest.NewRequest(http.MethodPost, "/api/journal", strings.NewReader(`{"text":"<hi>","mood":3,"rating":7}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/journal", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "&lt;hi&gt;")

	for _, path := range []string{"/health", "/ready", "/metrics", "/swagger/doc.json"} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRouter_CORS(t *testing.T) {
	t.Run("any origin", func(t *testing.T) {
		r := testRouter(t, testConfig("*"))
		req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("allow list", func(t *testing.T) {
		r := testRouter(t, testConfig("https://cura.example"))

		req := httptest.NewRequest(http.MethodGet, "/api/journal", nil)
		req.Header.Set("Origin", "https://cura.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, "https://cura.example", w.Header().Get("Access-Control-Allow-Origin"))

		req = httptest.NewRequest(http.MethodGet, "/api/journal", nil)
		req.Header.Set("Origin", "https://evil.example")
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestRouter_RateLimitFallsBackWithoutRedis(t *testing.T) {
	cfg := testConfig("*")
	cfg.RateLimit = config.RateLimitConfig{Enabled: true, UseRedis: true, RPS: 0, Burst: 1, WindowSeconds: 1}
	r := testRouter(t, cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
