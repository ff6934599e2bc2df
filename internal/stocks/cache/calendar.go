package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"

	"library/pkg/model"
)

const (
	keyPrefix      = "calendar:"
	scanBatchSize  = 100
	keyPatternScan = keyPrefix + "*"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// CalendarCache stores built month calendars keyed by year, month and day count.
type CalendarCache interface {
	Get(ctx context.Context, year, month, daysInMonth int) ([]*model.CalendarSummary, bool, error)
	Set(ctx context.Context, year, month, daysInMonth int, values []*model.CalendarSummary) error
	Invalidate(ctx context.Context) error
}

// RedisClient is the subset of the go-redis API the cache uses. *redis.Client satisfies it.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisCalendarCache struct {
	rdb RedisClient
	ttl time.Duration
}

// NewRedisCalendarCache caches each month for ttl. Rentals are written outside this
// service and never invalidate it, so availability may lag by up to ttl.
func NewRedisCalendarCache(rdb RedisClient, ttl time.Duration) CalendarCache {
	return &redisCalendarCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func Key(year, month, daysInMonth int) string {
	return fmt.Sprintf("%s%04d-%02d:%d", keyPrefix, year, month, daysInMonth)
}

func (c *redisCalendarCache) Get(ctx context.Context, year, month, daysInMonth int) ([]*model.CalendarSummary, bool, error) {
	data, err := c.rdb.Get(ctx, Key(year, month, daysInMonth)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read calendar cache: %w", err)
	}

	values, err := Decode(data)
	if err != nil {
		return nil, false, err
	}
	return values, true, nil
}

func (c *redisCalendarCache) Set(ctx context.Context, year, month, daysInMonth int, values []*model.CalendarSummary) error {
	data, err := Encode(values)
	if err != nil {
		return err
	}
	if err := c.rdb.Set(ctx, Key(year, month, daysInMonth), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write calendar cache: %w", err)
	}
	return nil
}

// Encode serializes a month calendar for storage.
func Encode(values []*model.CalendarSummary) ([]byte, error) {
	data, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode calendar: %w", err)
	}
	return data, nil
}

// Decode reverses Encode. Dates come back with a fixed zone offset but the same instant.
func Decode(data []byte) ([]*model.CalendarSummary, error) {
	var values []*model.CalendarSummary
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to decode cached calendar: %w", err)
	}
	return values, nil
}

// Invalidate drops every cached month.
func (c *redisCalendarCache) Invalidate(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, keyPatternScan, scanBatchSize).Iterator()

	keys := make([]string, 0, scanBatchSize)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatchSize {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate calendar cache: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan calendar cache: %w", err)
	}

	if len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate calendar cache: %w", err)
		}
	}
	return nil
}

type noopCalendarCache struct{}

// NewNoopCalendarCache is used when Redis is not configured.
func NewNoopCalendarCache() CalendarCache {
	return noopCalendarCache{}
}

func (noopCalendarCache) Get(context.Context, int, int, int) ([]*model.CalendarSummary, bool, error) {
	return nil, false, nil
}

func (noopCalendarCache) Set(context.Context, int, int, int, []*model.CalendarSummary) error {
	return nil
}

func (noopCalendarCache) Invalidate(context.Context) error {
	return nil
}
