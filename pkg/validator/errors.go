package validator

import "errors"

// Common validation errors that can be used across the application.
var (
	// ErrValidationFailed matches any ValidationErrors through errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)
