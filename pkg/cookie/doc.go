// Package cookie reads and writes HTTP cookies with shared defaults and
// optional HMAC-SHA256 signatures.
//
// The site stores the visitor id in a signed cookie so that one visitor
// cannot attach to another visitor's notification stream by editing it:
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(true))
//	if err := m.SetSigned(w, "visitor", id); err != nil { ... }
//	id, err := m.GetSigned(r, "visitor")
//
// Several secrets may be configured. New cookies are signed with the first
// one; any of them verifies, so secrets can be rotated without logging
// visitors out.
package cookie
