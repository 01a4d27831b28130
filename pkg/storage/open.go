package storage

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/harrisonrobin/studydesk/pkg/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Open builds the backend selected by cfg.Storage.Backend and wraps it in a Store.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	var (
		backend Backend
		err     error
	)

	switch cfg.Storage.Backend {
	case "", "file":
		backend = NewFileBackend(cfg.DataDir)
	case "sqlite":
		path := cfg.Storage.Path
		if path == "" {
			path = filepath.Join(cfg.DataDir, "studydesk.db")
		}
		backend, err = NewSQLiteBackend(path)
	case "redis":
		backend, err = NewRedisBackend(ctx, &redis.Options{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		}, cfg.Storage.Redis.Prefix)
	case "postgres":
		if cfg.Storage.Postgres.DSN == "" {
			return nil, fmt.Errorf("storage backend postgres needs storage.postgres.dsn")
		}
		backend, err = NewPostgresBackend(ctx, cfg.Storage.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Storage opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.String("data_dir", cfg.DataDir),
	)
	return New(backend, logger), nil
}
