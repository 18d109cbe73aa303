package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SignInThrottle counts failed sign-in attempts per email in Redis.
// Key format: signin:fail:<email>, expiring after the configured window so
// a lockout always clears itself.
type SignInThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewSignInThrottle creates a SignInThrottle wrapping the given Redis client.
func NewSignInThrottle(client *redis.Client, maxFailures int, window time.Duration) *SignInThrottle {
	return &SignInThrottle{client: client, maxFailures: int64(maxFailures), window: window}
}

// Blocked reports whether the email has reached the failure limit.
func (t *SignInThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n >= t.maxFailures, nil
}

// RecordFailure increments the failure counter, starting the expiry window
// on the first failure.
func (t *SignInThrottle) RecordFailure(ctx context.Context, email string) error {
	key := t.key(email)
	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("throttle incr: %w", err)
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful sign-in.
func (t *SignInThrottle) Reset(ctx context.Context, email string) error {
	return t.client.Del(ctx, t.key(email)).Err()
}

func (t *SignInThrottle) key(email string) string {
	return fmt.Sprintf("signin:fail:%s", email)
}
