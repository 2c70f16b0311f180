package i18n

import (
	"net/http"
	"strings"
)

// LangExtractor reads a language from a request. ok is false when the
// request carries no usable hint.
type LangExtractor func(r *http.Request) (lang Lang, ok bool)

// FromPath uses the page suffix of the request path. Only French pages are
// a positive signal; an unsuffixed path says nothing.
func FromPath() LangExtractor {
	return func(r *http.Request) (Lang, bool) {
		if LangFromPath(r.URL.Path) == French {
			return French, true
		}
		if isPage(r.URL.Path) {
			return English, true
		}
		return 0, false
	}
}

func FromCookie(name string) LangExtractor {
	return func(r *http.Request) (Lang, bool) {
		c, err := r.Cookie(name)
		if err != nil {
			return 0, false
		}
		lang, err := ParseLang(c.Value)
		return lang, err == nil
	}
}

func FromQuery(name string) LangExtractor {
	return func(r *http.Request) (Lang, bool) {
		v := strings.TrimSpace(r.URL.Query().Get(name))
		if v == "" {
			return 0, false
		}
		lang, err := ParseLang(v)
		return lang, err == nil
	}
}

func FromAcceptLanguage() LangExtractor {
	return func(r *http.Request) (Lang, bool) {
		return negotiate(r.Header.Get("Accept-Language"))
	}
}

// Chain returns the first language any extractor finds.
func Chain(extractors ...LangExtractor) LangExtractor {
	return func(r *http.Request) (Lang, bool) {
		for _, extr := range extractors {
			if extr == nil {
				continue
			}
			if lang, ok := extr(r); ok {
				return lang, true
			}
		}
		return 0, false
	}
}

// DefaultLangExtractor checks, in order: the page suffix, the query
// parameter "lang", the cookie "lang" and the Accept-Language header.
func DefaultLangExtractor() LangExtractor {
	return Chain(FromPath(), FromQuery("lang"), FromCookie("lang"), FromAcceptLanguage())
}
