package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const separator = '-'

type config struct {
	maxLength int
}

type Option func(*config)

// MaxLength caps the slug length. The cut never leaves a trailing separator.
func MaxLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxLength = n
		}
	}
}

// Make returns the slug of s, or "" when s has no letters or digits.
func Make(s string, opts ...Option) string {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pendingSep := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingSep && b.Len() > 0 {
				b.WriteRune(separator)
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}

	out := b.String()
	if cfg.maxLength > 0 && len(out) > cfg.maxLength {
		out = strings.TrimRight(out[:cfg.maxLength], string(separator))
	}
	return out
}

// Valid reports whether s is already a slug.
func Valid(s string) bool {
	return s != "" && Make(s) == s
}
