package validator

import (
	"fmt"
	"strings"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:          field,
			Message:        "field is required",
			TranslationKey: "validation.required",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// RequiredOneOf validates that at least one of values is non-blank.
func RequiredOneOf(field string, values ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, v := range values {
				if strings.TrimSpace(v) != "" {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        "at least one value is required",
			TranslationKey: "validation.required_one_of",
			TranslationValues: map[string]any{
				"field": field,
			},
		},
	}
}

// KeyMaxLength is the translation key of MaxLenString errors.
const KeyMaxLength = "validation.max_length"

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len([]rune(value)) <= max
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be at most %d characters long", max),
			TranslationKey: KeyMaxLength,
			TranslationValues: map[string]any{
				"field": field,
				"max":   max,
			},
		},
	}
}

// InList validates that value is one of allowedValues.
func InList[T comparable](field string, value T, allowedValues []T) Rule {
	return Rule{
		Check: func() bool {
			for _, allowed := range allowedValues {
				if value == allowed {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:          field,
			Message:        fmt.Sprintf("must be one of: %v", allowedValues),
			TranslationKey: "validation.in_list",
			TranslationValues: map[string]any{
				"field":          field,
				"allowed_values": allowedValues,
			},
		},
	}
}
