package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-schedule-engine/internal/domain/shift"
	goredis "github.com/redis/go-redis/v9"
)

// RedisCache stores actionable shifts in Redis with a fixed TTL.
type RedisCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedisCache connects and pings Redis before returning.
func NewRedisCache(addr, password string, db int, ttl time.Duration) (*RedisCache, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Redis cache connected", "addr", addr, "db", db)

	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

// Get implements shift.ActionableShiftCache.
func (c *RedisCache) Get(ctx context.Context, userCode string, date time.Time) (shift.ShiftRecord, error) {
	data, err := c.rdb.Get(ctx, Key(userCode, date)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return shift.ShiftRecord{}, shift.ErrCacheMiss
		}
		return shift.ShiftRecord{}, fmt.Errorf("failed to read actionable shift: %w", err)
	}
	return decode(data)
}

// Set implements shift.ActionableShiftCache.
func (c *RedisCache) Set(ctx context.Context, userCode string, date time.Time, record shift.ShiftRecord) error {
	data, err := encode(record)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, Key(userCode, date), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store actionable shift: %w", err)
	}
	return nil
}

// Delete removes a cached entry; used by tests and manual corrections.
func (c *RedisCache) Delete(ctx context.Context, userCode string, date time.Time) error {
	return c.rdb.Del(ctx, Key(userCode, date)).Err()
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
