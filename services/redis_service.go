package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// GetFromRedis decodes key into target. found is false on a cache miss.
func GetFromRedis(ctx context.Context, rdb *redis.Client, key string, target interface{}) (found bool, err error) {
	cachedData, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(cachedData, target); err != nil {
		return false, err
	}
	return true, nil
}

// A missing version key counts as version 0.
var setIfVersionScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if not v then v = "0" end
if v ~= ARGV[1] then
	return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// SetToRedisIfVersion stores value under key only while versionKey still
// holds version. stored is false when the version moved on.
func SetToRedisIfVersion(ctx context.Context, rdb *redis.Client, key, versionKey string, version int64, value interface{}, ttl time.Duration) (stored bool, err error) {
	dataJSON, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	n, err := setIfVersionScript.Run(ctx, rdb, []string{versionKey, key}, version, dataJSON, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// GetVersionFromRedis reads a counter written by INCR. A missing key is 0.
func GetVersionFromRedis(ctx context.Context, rdb *redis.Client, key string) (int64, error) {
	v, err := rdb.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func DeleteFromRedis(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
