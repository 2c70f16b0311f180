package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory bounds the in-memory part of multipart bodies.
const DefaultMaxMemory = 1 << 20

const (
	mediaTypeURLEncoded = "application/x-www-form-urlencoded"
	mediaTypeMultipart  = "multipart/form-data"
)

// Form binds `form:"name"` fields from an urlencoded or multipart body.
// Uploaded files are ignored. Requests without a Content-Type are not
// applicable; any other media type is rejected.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrNotApplicable
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidForm, err)
		}

		var values map[string][]string
		switch mediaType {
		case mediaTypeURLEncoded:
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.PostForm

		case mediaTypeMultipart:
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidForm, err)
			}
			values = r.MultipartForm.Value

		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindToStruct(v, "form", values, ErrInvalidForm)
	}
}
