package email

import "errors"

var (
	ErrFailedToSendEmail = errors.New("email: failed to send email")
	ErrInvalidConfig     = errors.New("email: invalid config")
	ErrNotConfigured     = errors.New("email: relay not configured")
	ErrInvalidMessage    = errors.New("email: invalid message")
)
