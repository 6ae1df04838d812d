package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb
}

func TestRedisAvailabilityCacheRoundTrip(t *testing.T) {
	cache := NewRedisAvailabilityCache(RedisAvailabilityCacheOptions{Client: newTestRedis(t), TTL: time.Minute})
	ctx := context.Background()

	if _, ok := cache.Get(ctx, 1); ok {
		t.Fatal("expected a miss on an empty cache")
	}
	version, ok := cache.Version(ctx, 1)
	if !ok || version != 0 {
		t.Fatalf("expected version 0, got %d %v", version, ok)
	}
	cache.Set(ctx, 1, version, []string{"2024-06-01", "2024-06-02"})
	dates, ok := cache.Get(ctx, 1)
	if !ok || len(dates) != 2 || dates[0] != "2024-06-01" {
		t.Fatalf("unexpected cached dates %v %v", dates, ok)
	}

	cache.Set(ctx, 2, 0, []string{})
	if dates, ok := cache.Get(ctx, 2); !ok || dates == nil || len(dates) != 0 {
		t.Fatalf("expected a cached empty list, got %v %v", dates, ok)
	}
}

func TestRedisAvailabilityCacheRejectsFillAfterInvalidate(t *testing.T) {
	cache := NewRedisAvailabilityCache(RedisAvailabilityCacheOptions{Client: newTestRedis(t)})
	ctx := context.Background()

	before, _ := cache.Version(ctx, 1)
	cache.Invalidate(ctx, 1)
	cache.Set(ctx, 1, before, []string{"2024-06-01"})
	if dates, ok := cache.Get(ctx, 1); ok {
		t.Fatalf("list read before the invalidation must be dropped, got %v", dates)
	}

	after, ok := cache.Version(ctx, 1)
	if !ok || after != before+1 {
		t.Fatalf("expected version %d, got %d", before+1, after)
	}
	cache.Set(ctx, 1, after, []string{"2024-06-01"})
	if _, ok := cache.Get(ctx, 1); !ok {
		t.Fatal("expected the fill with the current version to be stored")
	}

	cache.Invalidate(ctx, 1, 2)
	if _, ok := cache.Get(ctx, 1); ok {
		t.Fatal("expected invalidate to drop the entry")
	}
	if v, _ := cache.Version(ctx, 2); v != 1 {
		t.Fatalf("expected property 2 at version 1, got %d", v)
	}
}

func TestRedisLockerExcludesSecondHolder(t *testing.T) {
	rdb := newTestRedis(t)
	locker := NewRedisLocker(RedisLockerOptions{Client: rdb, TTL: time.Second, Wait: 100 * time.Millisecond})
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "lock:booking:property:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := locker.Lock(ctx, "lock:booking:property:1"); err == nil {
		t.Fatal("expected the second lock to time out")
	}
	other, err := locker.Lock(ctx, "lock:booking:property:2")
	if err != nil {
		t.Fatalf("other keys must stay free: %v", err)
	}
	other()

	unlock()
	again, err := locker.Lock(ctx, "lock:booking:property:1")
	if err != nil {
		t.Fatalf("expected the lock to be free after unlock: %v", err)
	}
	again()
}
