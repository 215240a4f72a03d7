package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JOURNAL_BACKEND", "")
	t.Setenv("JOURNAL_STORAGE_KEY", "")
	t.Setenv("JOURNAL_DISPLAY_TZ", "UTC")

	// viper ignores empty env values, so defaults apply
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Journal.Backend)
	require.Equal(t, "cura_journal", cfg.Journal.StorageKey)
	require.False(t, cfg.Journal.StrictDecode)
	require.Equal(t, time.UTC, cfg.Journal.DisplayLocation)
	require.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("JOURNAL_BACKEND", "Redis")
	t.Setenv("JOURNAL_STORAGE_KEY", "profile_42")
	t.Setenv("JOURNAL_STRICT_DECODE", "true")
	t.Setenv("JOURNAL_DISPLAY_TZ", "UTC")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "redis", cfg.Journal.Backend)
	require.Equal(t, "profile_42", cfg.Journal.StorageKey)
	require.True(t, cfg.Journal.StrictDecode)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
	require.InDelta(t, 2.5, cfg.RateLimit.RPS, 1e-9)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"JOURNAL_BACKEND": "cassandra"}},
		{"redis without host", map[string]string{"JOURNAL_BACKEND": "redis", "REDIS_HOST": ""}},
		{"mongo without uri", map[string]string{"JOURNAL_BACKEND": "mongo", "MONGODB_URI": ""}},
		{"postgres without dsn", map[string]string{"JOURNAL_BACKEND": "postgres", "POSTGRES_DSN": ""}},
		{"minio without endpoint", map[string]string{"JOURNAL_BACKEND": "minio", "MINIO_ENDPOINT": ""}},
		{"bad timezone", map[string]string{"JOURNAL_BACKEND": "memory", "JOURNAL_DISPLAY_TZ": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}
