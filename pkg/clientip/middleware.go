package clientip

import "net/http"

// Middleware stores the address resolved by res in the request context.
// A nil res uses DefaultHeaders.
func Middleware(res *Resolver) func(http.Handler) http.Handler {
	if res == nil {
		res = defaultResolver
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), res.IP(r))))
		})
	}
}
