package rdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrLockLost = errors.New("lock expired or deleted")

// RedisLock is a simple single instance distributed lock
type RedisLock struct {
	rdb   *Service
	key   string // should be unique to the resource being locked
	value string // should be unique to the worker doing the lock
	ttl   time.Duration
}

// NewLock creates a lock on key, owned by value, expiring after ttl
func (s *Service) NewLock(key, value string, ttl time.Duration) *RedisLock {
	return &RedisLock{
		rdb:   s,
		key:   key,
		value: value,
		ttl:   ttl,
	}
}

// Lock tries to aquire a lock until it succeeds or the context ends.
// It sets key-value ONLY if the key doesn't exist.
func (l *RedisLock) Lock(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		success, err := l.TryLock(ctx)
		if err != nil {
			return err
		}

		if success {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// TryLock only tries to aquire a lock,
// and informs the caller if it was successful or not.
// It sets key-value ONLY if the key doesn't exist.
func (l *RedisLock) TryLock(ctx context.Context) (bool, error) {
	return l.rdb.Client.SetNX(ctx, l.key, l.value, l.ttl).Result()
}

// CheckLock checks if the caller still owns the lock.
func (l *RedisLock) CheckLock(ctx context.Context) error {

	// Get the lock value
	value, err := l.rdb.Client.Get(ctx, l.key).Result()

	if errors.Is(err, redis.Nil) {
		return ErrLockLost
	}

	if err != nil {
		return fmt.Errorf("connectivity error during lock check: %w", err)
	}

	if value != l.value {
		return fmt.Errorf(
			"lock ownership hijacked by another worker (expected %s, got %s)",
			l.value, value,
		)
	}

	return nil
}

// Unlock deletes the key-value from Redis
// ONLY if the value is the correct value using LUA atomic script.
func (l *RedisLock) Unlock(ctx context.Context) error {
	return unlockScript.Run(ctx, l.rdb.Client, []string{l.key}, l.value).Err()
}

var unlockScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)
