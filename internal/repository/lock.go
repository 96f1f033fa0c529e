package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisLock is a SETNX advisory lock. MySQL has no partial unique indexes, so
// the at-most-one-open-attempt rule is guarded here instead of by a schema
// constraint.
type RedisLock struct {
	Client *redis.Client
}

func NewRedisLock(client *redis.Client) *RedisLock {
	return &RedisLock{Client: client}
}

func (l *RedisLock) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.Client.SetNX(ctx, key, 1, ttl).Result()
}

func (l *RedisLock) Release(ctx context.Context, key string) error {
	return l.Client.Del(ctx, key).Err()
}
