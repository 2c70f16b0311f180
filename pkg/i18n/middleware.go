package i18n

import "net/http"

// Middleware stores the request language in the request context. A nil
// extractor uses DefaultLangExtractor; requests without a hint get
// DefaultLang.
func Middleware(extr LangExtractor) func(http.Handler) http.Handler {
	if extr == nil {
		extr = DefaultLangExtractor()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang, ok := extr(r)
			if !ok {
				lang = DefaultLang
			}
			next.ServeHTTP(w, r.WithContext(WithLang(r.Context(), lang)))
		})
	}
}
