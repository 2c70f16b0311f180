package sanitizer

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex     = regexp.MustCompile(`\s+`)
	phoneSeparatorRegex = regexp.MustCompile(`[\s\-.()]`)
	nonDigitRegex       = regexp.MustCompile(`\D`)
)

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeWhitespace collapses runs of whitespace into a single space and trims.
func NormalizeWhitespace(s string) string {
	normalized := whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(normalized)
}

// SingleLine converts a multi-line string to a single line. Used for values
// that end up in email headers such as the subject.
func SingleLine(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return NormalizeWhitespace(s)
}

// StripPhoneSeparators removes the separators people type into phone numbers:
// whitespace, dashes, dots and parentheses. A leading plus sign is kept.
func StripPhoneSeparators(phone string) string {
	return phoneSeparatorRegex.ReplaceAllString(phone, "")
}

// Apply runs value through transforms in order.
func Apply[T any](value T, transforms ...func(T) T) T {
	result := value
	for _, transform := range transforms {
		result = transform(result)
	}
	return result
}

// Compose builds a reusable pipeline out of transforms.
func Compose[T any](transforms ...func(T) T) func(T) T {
	return func(value T) T {
		return Apply(value, transforms...)
	}
}
