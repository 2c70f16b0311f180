package ratelimiter

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request. An empty key skips
// limiting.
type KeyFunc func(r *http.Request) string

// Composite joins the non-empty keys of keyFuncs. Keys longer than 64
// bytes are hashed with FNV-1a.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}
		if len(parts) == 0 {
			return ""
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		_, _ = h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

// Static returns key for every request. Useful to scope a limiter to a
// route inside Composite.
func Static(key string) KeyFunc {
	return func(*http.Request) string { return key }
}

// DeniedHandler responds to a request over the limit.
type DeniedHandler func(w http.ResponseWriter, r *http.Request, res *Result)

// ErrorHandler responds when the store fails.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

type middlewareOptions struct {
	onDenied DeniedHandler
	onError  ErrorHandler
}

type MiddlewareOption func(*middlewareOptions)

func WithDeniedHandler(h DeniedHandler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.onDenied = h
		}
	}
}

func WithErrorHandler(h ErrorHandler) MiddlewareOption {
	return func(o *middlewareOptions) {
		if h != nil {
			o.onError = h
		}
	}
}

// Middleware consumes one token per request and sets the X-RateLimit
// headers. Denied requests get 429 unless a DeniedHandler is set. Store
// failures let the request through unless an ErrorHandler is set.
func Middleware(l Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	o := middlewareOptions{
		onDenied: func(w http.ResponseWriter, r *http.Request, res *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := l.Allow(r.Context(), key)
			if err != nil {
				if o.onError != nil {
					o.onError(w, r, err)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			SetHeaders(w.Header(), res)
			if !res.Allowed() {
				o.onDenied(w, r, res)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SetHeaders writes the X-RateLimit-* headers, plus Retry-After when res
// is denied.
func SetHeaders(h http.Header, res *Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
	if !res.Allowed() {
		secs := int((res.RetryAfter() + time.Second - 1) / time.Second)
		h.Set("Retry-After", strconv.Itoa(max(1, secs)))
	}
}
