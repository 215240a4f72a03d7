package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/curahealth/cura/backend/go-services/pkg/logger"
)

// Config holds application configuration
type Config struct {
	LogLevel  string
	Server    ServerConfig
	Journal   JournalConfig
	MongoDB   MongoDBConfig
	Redis     RedisConfig
	Postgres  PostgresConfig
	SQLite    SQLiteConfig
	MinIO     MinIOConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// JournalConfig selects where the journal lives and how it is read.
type JournalConfig struct {
	// Backend is one of memory, redis, mongo, postgres, sqlite, minio.
	Backend      string
	StorageKey   string
	StrictDecode bool
	// DisplayLocation is used when rendering entry timestamps.
	DisplayLocation *time.Location
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host      string
	Port      string
	Password  string
	DB        int
	KeyPrefix string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string { return r.Host + ":" + r.Port }

type PostgresConfig struct {
	DSN     string
	Timeout time.Duration
}

type SQLiteConfig struct {
	Path string
}

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type CORSConfig struct {
	AllowedOrigins []string
}

var backends = map[string]bool{
	"memory": true, "redis": true, "mongo": true, "postgres": true, "sqlite": true, "minio": true,
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", "5020")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_ENVIRONMENT", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("JOURNAL_BACKEND", "memory")
	v.SetDefault("JOURNAL_STORAGE_KEY", "cura_journal")
	v.SetDefault("JOURNAL_STRICT_DECODE", false)
	v.SetDefault("JOURNAL_DISPLAY_TZ", "Local")
	v.SetDefault("MONGODB_DATABASE", "cura")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("POSTGRES_TIMEOUT", 10)
	v.SetDefault("SQLITE_PATH", "cura_journal.db")
	v.SetDefault("MINIO_BUCKET", "cura")
	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_USE_REDIS", false)
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	backend := strings.ToLower(strings.TrimSpace(v.GetString("JOURNAL_BACKEND")))
	if !backends[backend] {
		return nil, fmt.Errorf("unknown JOURNAL_BACKEND %q", backend)
	}
	key := strings.TrimSpace(v.GetString("JOURNAL_STORAGE_KEY"))
	if key == "" {
		return nil, fmt.Errorf("JOURNAL_STORAGE_KEY must not be empty")
	}
	loc, err := time.LoadLocation(v.GetString("JOURNAL_DISPLAY_TZ"))
	if err != nil {
		return nil, fmt.Errorf("JOURNAL_DISPLAY_TZ: %w", err)
	}

	cfg := &Config{
		LogLevel: v.GetString("LOG_LEVEL"),
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			Host:            v.GetString("SERVER_HOST"),
			Environment:     v.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Journal: JournalConfig{
			Backend:         backend,
			StorageKey:      key,
			StrictDecode:    v.GetBool("JOURNAL_STRICT_DECODE"),
			DisplayLocation: loc,
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:      v.GetString("REDIS_HOST"),
			Port:      v.GetString("REDIS_PORT"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Postgres: PostgresConfig{
			DSN:     v.GetString("POSTGRES_DSN"),
			Timeout: time.Duration(v.GetInt("POSTGRES_TIMEOUT")) * time.Second,
		},
		SQLite: SQLiteConfig{
			Path: v.GetString("SQLITE_PATH"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	// Basic validation
	switch cfg.Journal.Backend {
	case "redis":
		if cfg.Redis.Host == "" {
			return nil, fmt.Errorf("JOURNAL_BACKEND=redis requires REDIS_HOST")
		}
	case "mongo":
		if cfg.MongoDB.URI == "" {
			return nil, fmt.Errorf("JOURNAL_BACKEND=mongo requires MONGODB_URI")
		}
	case "postgres":
		if cfg.Postgres.DSN == "" {
			return nil, fmt.Errorf("JOURNAL_BACKEND=postgres requires POSTGRES_DSN")
		}
	case "minio":
		if cfg.MinIO.Endpoint == "" {
			return nil, fmt.Errorf("JOURNAL_BACKEND=minio requires MINIO_ENDPOINT")
		}
	}
	if cfg.RateLimit.UseRedis && cfg.Redis.Host == "" {
		logger.Warn("RATE_LIMIT_USE_REDIS is set without REDIS_HOST; falling back to in-memory limiter")
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
