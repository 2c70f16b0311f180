package handler

import (
	"errors"
	"net/http"
)

var (
	ErrNilResponse       = errors.New("handler returned nil response")
	ErrSSENotInitialized = errors.New("SSE not initialized for this request")
)

// HTTPError carries a status code and a translation key shown to the user.
type HTTPError struct {
	Code int
	Key  string
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest         = NewHTTPError(http.StatusBadRequest, "error.bad_request")
	ErrNotFound           = NewHTTPError(http.StatusNotFound, "error.not_found")
	ErrConflict           = NewHTTPError(http.StatusConflict, "error.conflict")
	ErrTooManyRequests    = NewHTTPError(http.StatusTooManyRequests, "error.too_many_requests")
	ErrInternalServer     = NewHTTPError(http.StatusInternalServerError, "error.internal")
	ErrServiceUnavailable = NewHTTPError(http.StatusServiceUnavailable, "error.unavailable")
)
