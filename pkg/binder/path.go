package binder

import (
	"fmt"
	"net/http"
)

// Path binds `path:"name"` fields using extractor, which is usually
// chi.URLParam.
func Path(extractor func(r *http.Request, key string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: nil extractor", ErrInvalidPath)
		}

		fields, err := taggedFields(v, "path")
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPath, err)
		}

		values := make(map[string][]string, len(fields))
		for _, f := range fields {
			if s := extractor(r, f.key); s != "" {
				values[f.key] = []string{s}
			}
		}
		return bindToStruct(v, "path", values, ErrInvalidPath)
	}
}
