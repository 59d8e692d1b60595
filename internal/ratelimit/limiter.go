// Package ratelimit bounds per-user write throughput with a fixed
// 60-second counter window kept in a low-latency counter store, so
// write endpoints never touch the transactional store just to decide
// whether a request is allowed.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jaydeadlondon/mini-twitter/internal/apperrors"
)

const (
	Window = 60 * time.Second
	Budget = 5
)

// Counter is the atomic increment primitive the limiter needs. The
// production implementation is Redis; tests use the in-memory one.
type Counter interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type Limiter struct {
	counter Counter
}

func NewLimiter(counter Counter) *Limiter {
	return &Limiter{counter: counter}
}

// Allow consumes one unit of the user's write budget. The increment is
// atomic against concurrent requests for the same user; the expiry is
// set only on the first increment of a window so later requests do not
// push the reset forward. A crash between the increment and the expiry
// call can leave a counter with no TTL, which permanently limits that
// key until it is cleared by hand. Known gap, accepted.
func (l *Limiter) Allow(ctx context.Context, userID int64) error {
	key := fmt.Sprintf("rate_limit:%d", userID)

	count, err := l.counter.Incr(ctx, key)
	if err != nil {
		return err
	}

	if count == 1 {
		if err := l.counter.Expire(ctx, key, Window); err != nil {
			return err
		}
	}

	if count > Budget {
		return apperrors.RateLimitExceeded("rate limit exceeded: %d posts per minute", Budget)
	}
	return nil
}
