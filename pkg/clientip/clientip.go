package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in this order when no headers are configured.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address from a request.
type Resolver struct {
	headers []string
}

type Option func(*Resolver)

// WithTrustedHeaders replaces DefaultHeaders. Passing no headers makes the
// resolver use only the remote address.
func WithTrustedHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

func New(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the normalized client address, or "" when none is valid.
// X-Forwarded-For style lists yield their first valid entry.
func (res *Resolver) IP(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

var defaultResolver = New()

// GetIP resolves with DefaultHeaders.
func GetIP(r *http.Request) string {
	return defaultResolver.IP(r)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(strings.Trim(s, "[]"))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
