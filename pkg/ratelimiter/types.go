package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Limiter is satisfied by Bucket.
type Limiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Store keeps bucket state.
type Store interface {
	// ConsumeTokens refills the bucket for key, then takes tokens when enough
	// are available. remaining is negative when the request is denied, in
	// which case nothing is taken. tokens == 0 only refills.
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)

	Reset(ctx context.Context, key string) error
}

// Result of a rate limit check.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

func (r *Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is zero for allowed requests.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Config defines the token bucket.
type Config struct {
	Capacity       int           `env:"CAPACITY" envDefault:"5"`
	RefillRate     int           `env:"REFILL_RATE" envDefault:"1"`
	RefillInterval time.Duration `env:"REFILL_INTERVAL" envDefault:"1m"`
}

func (c Config) validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// ttl is how long an idle bucket must be kept before it is full again.
func (c Config) ttl() time.Duration {
	intervals := c.Capacity/c.RefillRate + 1
	return time.Duration(intervals) * c.RefillInterval
}

// refill returns the tokens and refill time after elapsed.
func (c Config) refill(tokens int, lastRefill, now time.Time) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	if elapsed < c.RefillInterval {
		return tokens, lastRefill
	}
	maxIntervals := int64(c.Capacity/c.RefillRate + 1)
	intervals := int(min(int64(elapsed/c.RefillInterval), maxIntervals))
	return min(tokens+intervals*c.RefillRate, c.Capacity), now
}
