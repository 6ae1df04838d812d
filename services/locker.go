package services

import (
	"context"
	"sync"
	"time"

	"airmetr/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serialises booking writes per key. The returned unlock func must be
// called exactly once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker is an in-process keyed mutex. It only protects a single
// instance of the API.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyLock)}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-kl.ch
				l.release(key, kl)
			})
		}, nil
	case <-ctx.Done():
		l.release(key, kl)
		return nil, errors.NewAppError(errors.ErrCodeLockTimeout, "The property is busy, please try again", ctx.Err())
	}
}

func (l *LocalLocker) release(key string, kl *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

// Release only deletes the key if it still holds our token.
var redisUnlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a lease lock shared by every API instance pointing at the
// same Redis. A holder that dies keeps the key until ttl expires.
type RedisLocker struct {
	rdb     *redis.Client
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

type RedisLockerOptions struct {
	Client *redis.Client
	TTL    time.Duration // lease length
	Wait   time.Duration // how long Lock retries before giving up
}

func NewRedisLocker(opts RedisLockerOptions) *RedisLocker {
	l := &RedisLocker{
		rdb:     opts.Client,
		ttl:     opts.TTL,
		wait:    opts.Wait,
		backoff: 25 * time.Millisecond,
	}
	if l.ttl <= 0 {
		l.ttl = 10 * time.Second
	}
	if l.wait <= 0 {
		l.wait = 5 * time.Second
	}
	return l
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	token := uuid.NewString()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			return nil, errors.NewAppError(errors.ErrCodeLockTimeout, "Failed to acquire booking lock", err)
		}
		if ok {
			return func() {
				// the request context may already be gone
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = redisUnlockScript.Run(releaseCtx, l.rdb, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
		case <-time.After(l.backoff):
			continue
		}
		break
	}
	return nil, errors.NewAppError(errors.ErrCodeLockTimeout, "The property is busy, please try again", ctx.Err())
}

// ChainLocker takes every locker in order and releases them in reverse.
type ChainLocker []Locker

func (c ChainLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlocks := make([]func(), 0, len(c))
	releaseAll := func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
	for _, locker := range c {
		unlock, err := locker.Lock(ctx, key)
		if err != nil {
			releaseAll()
			return nil, err
		}
		unlocks = append(unlocks, unlock)
	}
	return releaseAll, nil
}
