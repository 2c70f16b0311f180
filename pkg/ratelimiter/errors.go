package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("ratelimiter: invalid configuration")
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
	ErrEmptyKey          = errors.New("ratelimiter: empty key")
	ErrStoreUnavailable  = errors.New("ratelimiter: store unavailable")
)
