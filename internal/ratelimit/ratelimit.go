// Package ratelimit bounds how often a key may perform an action inside a window.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter decides whether the action identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// New returns a Redis-backed limiter when client is non-nil and an in-process one otherwise.
func New(client *redis.Client, prefix string, limit int, window time.Duration) Limiter {
	if client != nil {
		return NewRedisLimiter(client, prefix, limit, window)
	}
	return NewLocalLimiter(limit, window)
}
