// Package clientip resolves the address of the visitor behind the site's
// reverse proxy.
//
// The resolver trusts a configurable list of forwarding headers in order and
// falls back to the connection's remote address. The HTTP middleware stores
// the address in the request context where the rate limiter and the logger
// pick it up.
package clientip
