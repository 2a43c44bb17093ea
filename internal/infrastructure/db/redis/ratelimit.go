package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/openforum/forum-api/internal/core/ports"
)

const (
	keyPrefix    = "forum:ratelimit:"
	limitTimeout = 250 * time.Millisecond
)

// RateLimiter is a fixed-window counter shared by every API instance.
// Key format: forum:ratelimit:<key>
type RateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

var _ ports.RateLimiter = (*RateLimiter)(nil)

// NewRateLimiter allows limit hits per key within window. A window of zero
// defaults to one minute.
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{client: client, limit: limit, window: window}
}

// Allow increments the counter for key. On Redis failure the hit is allowed
// and the error returned for logging.
func (l *RateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.limit <= 0 {
		return true, nil
	}

	ctx, cancel := context.WithTimeout(ctx, limitTimeout)
	defer cancel()

	// The window starts with a SET NX EX so the first counter value already
	// carries its TTL. INCR keeps an existing TTL, so no key outlives its window.
	k := keyPrefix + key
	if err := l.client.SetNX(ctx, k, 0, l.window).Err(); err != nil {
		return true, fmt.Errorf("rate limit open window: %w", err)
	}
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("rate limit incr: %w", err)
	}
	return n <= int64(l.limit), nil
}
