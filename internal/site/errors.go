package site

import "errors"

var (
	ErrInvalidCatalogue = errors.New("site: invalid project catalogue")
	ErrInvalidConfig    = errors.New("site: invalid configuration")
	ErrNoCookieSecret   = errors.New("site: cookie secrets are required outside development")
)
