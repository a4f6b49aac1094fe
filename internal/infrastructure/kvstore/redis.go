package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"futur-backend/internal/domain"
	"futur-backend/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCmdable is the subset of *redis.Client the Redis backend needs.
type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Redis stores values as plain strings under a key prefix.
type Redis struct {
	client RedisCmdable
	prefix string
	ttl    time.Duration
}

// NewRedisClient creates a client for addr.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// NewRedis wraps client. A zero ttl keeps keys forever.
func NewRedis(client RedisCmdable, prefix string, ttl time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := r.client.Get(ctx, r.prefix+key).Bytes()
	logger.StorageOp("redis", "get", key, time.Since(start), err)
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: redis get %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := r.client.Set(ctx, r.prefix+key, value, r.ttl).Err()
	logger.StorageOp("redis", "set", key, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("%w: redis set %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: redis delete %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}
