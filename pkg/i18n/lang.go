package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is one of the site locales.
type Lang uint8

const (
	English Lang = iota + 1
	French
)

// DefaultLang is used when nothing else selects a locale.
const DefaultLang = English

// Langs lists the supported locales, default first.
var Langs = []Lang{English, French}

// maxAcceptLanguageLength caps the header before parsing.
const maxAcceptLanguageLength = 4096

var matcher = language.NewMatcher([]language.Tag{language.English, language.French})

func (l Lang) Valid() bool {
	return l == English || l == French
}

// Code is the ISO 639-1 code, as used in html lang attributes and YAML files.
func (l Lang) Code() string {
	switch l {
	case English:
		return "en"
	case French:
		return "fr"
	}
	return ""
}

func (l Lang) String() string {
	return l.Code()
}

// Tag returns the x/text language tag of l.
func (l Lang) Tag() language.Tag {
	if l == French {
		return language.French
	}
	return language.English
}

// Suffix is the file-name suffix of pages in l, placed before the extension.
func (l Lang) Suffix() string {
	if l == French {
		return frenchSuffix
	}
	return ""
}

// Other returns the locale that is not l.
func (l Lang) Other() Lang {
	if l == French {
		return English
	}
	return French
}

// ParseLang accepts a language code or tag such as "fr", "FR" or "fr-CA".
func ParseLang(s string) (Lang, error) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 35 {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}

	tag, err := language.Parse(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrUnsupportedLanguage, s, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		return English, nil
	case "fr":
		return French, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Negotiate picks the best locale for an Accept-Language header. Malformed
// or unmatched headers yield DefaultLang.
func Negotiate(header string) Lang {
	lang, _ := negotiate(header)
	return lang
}

func negotiate(header string) (Lang, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return DefaultLang, false
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return DefaultLang, false
	}

	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return DefaultLang, false
	}
	return Langs[idx], true
}
