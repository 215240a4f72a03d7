package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/curahealth/cura/backend/go-services/handlers"
	"github.com/curahealth/cura/backend/go-services/internal/config"
	"github.com/curahealth/cura/backend/go-services/internal/journal"
	"github.com/curahealth/cura/backend/go-services/internal/journal/handler"
	"github.com/curahealth/cura/backend/go-services/internal/storage"
	"github.com/curahealth/cura/backend/go-services/pkg/logger"
	"github.com/curahealth/cura/backend/go-services/pkg/metrics"
	"github.com/curahealth/cura/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: backend=%s key=%s strict=%v", cfg.Journal.Backend, cfg.Journal.StorageKey, cfg.Journal.StrictDecode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to open journal backend: %v", err)
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.Warnf("closing journal backend: %v", err)
		}
	}()

	var opts []journal.Option
	if cfg.Journal.StrictDecode {
		opts = append(opts, journal.WithStrictDecode())
	}
	store, err := journal.NewStore(backend, cfg.Journal.StorageKey, opts...)
	if err != nil {
		logger.Fatalf("failed to create journal store: %v", err)
	}

	// Redis for the shared rate limiter, independent of the journal backend
	var limiterRedis *redis.Client
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		limiterRedis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := limiterRedis.Ping(ctx).Err(); err != nil {
			logger.Warnf("rate limiter: redis %s unreachable, using in-process buckets: %v", cfg.Redis.Addr(), err)
			_ = limiterRedis.Close()
			limiterRedis = nil
		} else {
			defer limiterRedis.Close()
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := newRouter(cfg, store, backend, limiterRedis)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting journal service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Errorf("server failed: %v", err)
		}
	case <-ctx.Done():
		logger.Infof("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("graceful shutdown failed: %v", err)
	}
	logger.Infof("journal service stopped")
}

// newRouter assembles middleware and routes. Collectors must already be
// registered with the default registry.
func newRouter(cfg *config.Config, store handler.Journal, backend handlers.Pinger, limiterRedis *redis.Client) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	if len(cfg.CORS.AllowedOrigins) == 0 || (len(cfg.CORS.AllowedOrigins) == 1 && cfg.CORS.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && limiterRedis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(limiterRedis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterHealth(r, backend, cfg.Journal.Backend, startTime)
	handlers.RegisterSwagger(r)
	handler.RegisterJournalRoutes(r, store, cfg.Journal.DisplayLocation)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
