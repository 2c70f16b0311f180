// Package ratelimiter throttles requests with a token bucket.
//
// A Bucket holds the limits and delegates state to a Store. MemoryStore keeps
// buckets in process and suits a single instance; RedisStore keeps them in
// Redis behind a Lua script so several instances share one budget.
//
//	limiter, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       5,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//
//	res, err := limiter.Allow(ctx, clientip.FromContext(ctx))
//	if err == nil && !res.Allowed() {
//		// too many requests, retry after res.RetryAfter()
//	}
//
// Denied requests do not consume tokens.
package ratelimiter
