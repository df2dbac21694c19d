// Package ratelimit provides a Redis-backed fixed-window request limiter
// keyed by endpoint and client IP. Counters live in Redis so the limit holds
// across replicas.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var incrWindowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// Limiter counts requests per key within a fixed time window.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// New creates a limiter on an existing Redis client.
func New(client *redis.Client, prefix string, limit int, window time.Duration) (*Limiter, error) {
	if client == nil {
		return nil, errors.New("rate limiter requires a redis client")
	}
	if limit <= 0 || window <= 0 {
		return nil, errors.New("rate limiter requires positive limit and window")
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "librarysvc:ratelimit"
	}
	return &Limiter{client: client, prefix: prefix, limit: limit, window: window}, nil
}

// NewFromAddr dials Redis and creates a limiter.
func NewFromAddr(addr, password, prefix string, limit int, window time.Duration) (*Limiter, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, errors.New("rate limiter redis addr is required")
	}
	return New(redis.NewClient(&redis.Options{Addr: addr, Password: password}), prefix, limit, window)
}

// Allow reports whether the key is within quota for the current window.
// On Redis failures the limiter fails closed and returns false.
func (l *Limiter) Allow(key string) bool {
	if l == nil {
		return false
	}
	key = strings.TrimSpace(key)
	if key == "" {
		key = "unknown"
	}
	windowMs := l.window.Milliseconds()
	slot := time.Now().UTC().UnixMilli() / windowMs
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	count, err := incrWindowScript.Run(ctx, l.client, []string{redisKey}, windowMs).Int64()
	if err != nil {
		return false
	}
	return count <= int64(l.limit)
}
