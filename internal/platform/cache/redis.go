// Package cache provides the Redis-backed terminal locker and snapshot cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pdv_backoffice/internal/apperrors"
	"github.com/SscSPs/pdv_backoffice/internal/core/ports"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pdv:"

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return rdb, nil
}

// Locker implements ports.TerminalLocker with redislock.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
}

var _ ports.TerminalLocker = (*Locker)(nil)

func NewLocker(rdb redis.UniversalClient, ttl time.Duration) *Locker {
	return &Locker{client: redislock.New(rdb), ttl: ttl}
}

// Lock obtains key and keeps its lease alive until the returned release
// func runs.
func (l *Locker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+"lock:"+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 5),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return noRelease, fmt.Errorf("%w: %s is busy, try again", apperrors.ErrConflict, key)
	}
	if err != nil {
		return noRelease, fmt.Errorf("%w: obtaining lock %s: %v", apperrors.ErrUnavailable, key, err)
	}
	stop := keepAlive(context.WithoutCancel(ctx), key, l.ttl/2, func(ctx context.Context) error {
		return lock.Refresh(ctx, l.ttl, nil)
	})
	return func(ctx context.Context) error {
		stop()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}

func noRelease(context.Context) error { return nil }

// keepAlive extends the lease every interval while the holder works, so a
// slow store call cannot outlive the TTL. It stops at the first failed
// refresh; the lease then expires on its own.
func keepAlive(ctx context.Context, key string, interval time.Duration, refresh func(context.Context) error) (stop func()) {
	if interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := refresh(ctx); err != nil {
					if ctx.Err() == nil {
						slog.WarnContext(ctx, "Failed to refresh lock", slog.String("key", key), slog.String("error", err.Error()))
					}
					return
				}
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}

// Cache implements ports.SnapshotCache with JSON values in Redis.
type Cache struct {
	rdb redis.UniversalClient
}

var _ ports.SnapshotCache = (*Cache)(nil)

func NewCache(rdb redis.UniversalClient) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decoding cached %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s for cache: %w", key, err)
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = keyPrefix + k
	}
	if err := c.rdb.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
