package services

import (
	"context"
	"fmt"
	"time"

	"airmetr/constants"
	"airmetr/services/logger"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache holds the unavailable-date list per property. Failures
// are never surfaced to callers: a broken cache degrades to a miss.
//
// Every Invalidate bumps the property's version. A reader takes Version
// before loading from the store and passes it to Set, which drops the list
// if a write was invalidated in between.
type AvailabilityCache interface {
	Get(ctx context.Context, propertyID uint) ([]string, bool)
	// Version is false when the cache cannot be reached; nothing should be
	// stored then.
	Version(ctx context.Context, propertyID uint) (int64, bool)
	Set(ctx context.Context, propertyID uint, version int64, dates []string)
	Invalidate(ctx context.Context, propertyIDs ...uint)
}

func availabilityKey(propertyID uint) string {
	return fmt.Sprintf("%s%d", constants.AvailabilityCacheKeyPrefix, propertyID)
}

func availabilityVersionKey(propertyID uint) string {
	return fmt.Sprintf("%s%d", constants.AvailabilityVersionKeyPrefix, propertyID)
}

type RedisAvailabilityCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

type RedisAvailabilityCacheOptions struct {
	Client *redis.Client
	TTL    time.Duration
	Logger logger.Logger
}

func NewRedisAvailabilityCache(opts RedisAvailabilityCacheOptions) *RedisAvailabilityCache {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedisAvailabilityCache{rdb: opts.Client, ttl: ttl, logger: log}
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, propertyID uint) ([]string, bool) {
	var dates []string
	found, err := GetFromRedis(ctx, c.rdb, availabilityKey(propertyID), &dates)
	if err != nil {
		c.logger.Warn("availability cache read failed for property %d: %v", propertyID, err)
		return nil, false
	}
	if !found {
		return nil, false
	}
	if dates == nil {
		dates = []string{}
	}
	return dates, true
}

func (c *RedisAvailabilityCache) Version(ctx context.Context, propertyID uint) (int64, bool) {
	v, err := GetVersionFromRedis(ctx, c.rdb, availabilityVersionKey(propertyID))
	if err != nil {
		c.logger.Warn("availability version read failed for property %d: %v", propertyID, err)
		return 0, false
	}
	return v, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, propertyID uint, version int64, dates []string) {
	stored, err := SetToRedisIfVersion(ctx, c.rdb, availabilityKey(propertyID), availabilityVersionKey(propertyID), version, dates, c.ttl)
	if err != nil {
		c.logger.Warn("availability cache write failed for property %d: %v", propertyID, err)
		return
	}
	if !stored {
		c.logger.Debug("availability cache fill for property %d skipped, a write landed meanwhile", propertyID)
	}
}

// Invalidate bumps the version before deleting, so a fill that read the
// store before the write can no longer be stored.
func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, propertyIDs ...uint) {
	if len(propertyIDs) == 0 {
		return
	}
	keys := make([]string, 0, len(propertyIDs))
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range propertyIDs {
			pipe.Incr(ctx, availabilityVersionKey(id))
			keys = append(keys, availabilityKey(id))
		}
		pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		c.logger.Warn("availability cache invalidation failed for %v: %v", propertyIDs, err)
	}
}

// NopAvailabilityCache is used when Redis is not configured.
type NopAvailabilityCache struct{}

func (NopAvailabilityCache) Get(context.Context, uint) ([]string, bool)  { return nil, false }
func (NopAvailabilityCache) Version(context.Context, uint) (int64, bool) { return 0, false }
func (NopAvailabilityCache) Set(context.Context, uint, int64, []string)  {}
func (NopAvailabilityCache) Invalidate(context.Context, ...uint)         {}
