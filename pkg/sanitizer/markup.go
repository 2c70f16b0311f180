package sanitizer

import (
	"html"
	"strconv"
	"strings"
	"unicode/utf8"
)

// EscapeMarkup replaces the five HTML-significant characters (& < > " ')
// with their entity equivalents. All other characters pass through unchanged.
// The empty string stands for absent input and yields the empty string.
func EscapeMarkup(s string) string {
	if s == "" {
		return ""
	}
	return html.EscapeString(s)
}

const upperHex = "0123456789ABCDEF"

// isUnreserved reports whether b belongs to the RFC 3986 unreserved set.
func isUnreserved(b byte) bool {
	switch {
	case 'a' <= b && b <= 'z', 'A' <= b && b <= 'Z', '0' <= b && b <= '9':
		return true
	case b == '-', b == '.', b == '_', b == '~':
		return true
	}
	return false
}

// NormalizeKey percent-encodes s into a token made only of unreserved
// characters and %XX triplets. The mapping is pure and deterministic, so a
// skill tag rendered from a label and a later lookup for the same label
// always agree.
func NormalizeKey(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}
	return b.String()
}

// EscapeSelectorValue escapes s for use inside a double-quoted CSS
// attribute-selector value. Quotes and backslashes get a backslash prefix,
// control characters become hex escapes terminated by a space, NUL becomes
// U+FFFD. Output of NormalizeKey contains no metacharacters and passes
// through unchanged.
func EscapeSelectorValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		switch {
		case r == 0:
			b.WriteRune(utf8.RuneError)
		case r < 0x20 || r == 0x7F:
			b.WriteByte('\\')
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte(' ')
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
