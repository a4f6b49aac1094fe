package kvstore

import (
	"context"
	"fmt"

	"futur-backend/config"
	"futur-backend/internal/domain"
	"futur-backend/pkg/cache"
	"futur-backend/pkg/logger"
	"futur-backend/pkg/storage"
)

// Open builds the backend named by cfg.StorageDriver. The returned close
// function releases connections and is never nil.
func Open(ctx context.Context, cfg *config.Config, mem cache.CacheService) (domain.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.StorageDriver {
	case config.StorageMemory, "":
		return NewMemory(mem), noop, nil

	case config.StorageSQLite:
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return s, func() { _ = s.Close() }, nil

	case config.StoragePostgres:
		pool, err := NewPgxPool(ctx, cfg.DBUrl, cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnIdleTime)
		if err != nil {
			return nil, noop, err
		}
		pg := NewPostgres(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return pg, pool.Close, nil

	case config.StorageRedis:
		client := NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("ping redis %s: %w", cfg.RedisAddr, err)
		}
		return NewRedis(client, cfg.RedisKeyPrefix, 0), func() { _ = client.Close() }, nil

	case config.StorageS3:
		client, err := storage.NewR2Client(ctx, cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2AccessKeySecret)
		if err != nil {
			return nil, noop, fmt.Errorf("r2 client: %w", err)
		}
		return NewS3(client, cfg.R2BucketName, cfg.S3Prefix), noop, nil
	}

	logger.Error().Str("driver", cfg.StorageDriver).Msg("Unknown storage driver")
	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
