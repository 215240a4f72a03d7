package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/curahealth/cura/backend/go-services/internal/config"
	"github.com/curahealth/cura/backend/go-services/internal/database"
	"github.com/curahealth/cura/backend/go-services/pkg/logger"
)

const (
	connectAttempts = 5
	connectBackoff  = time.Second
)

// Open connects the backend named by cfg.Journal.Backend. The caller owns
// the returned backend and must Close it.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Journal.Backend {
	case "memory", "":
		logger.Warn("journal backend is in-memory; entries are lost on restart")
		return NewMemoryBackend(), nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		err := database.Retry(ctx, "redis", connectAttempts, connectBackoff, func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("open redis backend: %w", err)
		}
		logger.Infof("journal backend: redis %s", cfg.Redis.Addr())
		return NewRedisBackend(client, cfg.Redis.KeyPrefix), nil

	case "mongo":
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, connectAttempts, connectBackoff)
		if err != nil {
			return nil, fmt.Errorf("open mongo backend: %w", err)
		}
		b := NewMongoBackend(client.Database(cfg.MongoDB.Database).Collection(MongoCollection))
		b.client = client
		logger.Infof("journal backend: mongo database=%s", cfg.MongoDB.Database)
		return b, nil

	case "postgres":
		var pool *pgxpool.Pool
		err := database.Retry(ctx, "PostgreSQL", connectAttempts, connectBackoff, func(ctx context.Context) error {
			var err error
			pool, err = database.ConnectPostgres(ctx, cfg.Postgres.DSN, cfg.Postgres.Timeout)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("open postgres backend: %w", err)
		}
		b, err := NewPostgresBackend(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		b.owns = true
		logger.Infof("journal backend: postgres")
		return b, nil

	case "sqlite":
		b, err := NewSQLiteBackend(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		logger.Infof("journal backend: sqlite %s", cfg.SQLite.Path)
		return b, nil

	case "minio":
		var b *MinIOBackend
		err := database.Retry(ctx, "MinIO", connectAttempts, connectBackoff, func(ctx context.Context) error {
			var err error
			b, err = NewMinIOBackend(ctx, &cfg.MinIO)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("open minio backend: %w", err)
		}
		logger.Infof("journal backend: minio %s bucket=%s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
		return b, nil
	}
	return nil, fmt.Errorf("unknown journal backend %q", cfg.Journal.Backend)
}
