package validator

import (
	"regexp"
	"strings"

	"github.com/dmitrymomot/portfolio/pkg/sanitizer"
)

var (
	// frenchPhoneRegex matches 0X XX XX XX XX and +33 X XX XX XX XX with separators removed.
	frenchPhoneRegex = regexp.MustCompile(`^(?:0|\+33)[1-9]\d{8}$`)
	// intlPhoneRegex matches + followed by a 2-3 digit country code and 6-14 digits.
	intlPhoneRegex = regexp.MustCompile(`^\+\d{2,3}\d{6,14}$`)
)

// IsSimpleEmail reports whether value has the local@domain.tld shape:
// exactly one '@', at least one '.' after it and no whitespace.
func IsSimpleEmail(value string) bool {
	if value == "" || strings.ContainsFunc(value, isSpace) {
		return false
	}
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndexByte(domain, '.')
	// a label before the dot and a tld after it
	return dot > 0 && dot < len(domain)-1
}

// IsPhone reports whether value is a French national or international phone
// number once spaces, dashes, dots and parentheses are stripped.
func IsPhone(value string) bool {
	digits := sanitizer.StripPhoneSeparators(value)
	return frenchPhoneRegex.MatchString(digits) || intlPhoneRegex.MatchString(digits)
}

// ValidEmailSimple validates the local@domain.tld shape of an email address.
func ValidEmailSimple(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsSimpleEmail(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "invalid email",
			TranslationKey: "validation.email",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// ValidPhone validates a French or international phone number.
func ValidPhone(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsPhone(strings.TrimSpace(value))
		},
		Error: ValidationError{
			Field:          field,
			Message:        "invalid phone",
			TranslationKey: "validation.phone",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0xA0:
		return true
	}
	return false
}
