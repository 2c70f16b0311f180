package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/portfolio/pkg/logger"
)

// Translator looks up dot-separated keys in per-language translation trees.
// It is safe for concurrent use.
type Translator struct {
	mu             sync.RWMutex
	translations   map[Lang]map[string]any
	defaultLang    Lang
	fallbackToKey  bool
	missingLogMode bool
	logger         *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithDefaultLanguage sets the language consulted when a key is missing in
// the requested one.
func WithDefaultLanguage(lang Lang) Option {
	return func(t *Translator) {
		if lang.Valid() {
			t.defaultLang = lang
		}
	}
}

// WithFallbackToKey controls whether a missing key translates to itself.
// Default is true.
func WithFallbackToKey(fallback bool) Option {
	return func(t *Translator) {
		t.fallbackToKey = fallback
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithMissingTranslationsLogging logs every missing key at warn level.
func WithMissingTranslationsLogging(enabled bool) Option {
	return func(t *Translator) {
		t.missingLogMode = enabled
	}
}

// NewTranslator loads every *.yaml and *.yml file at the root of fsys. Each
// file holds one top-level mapping per language code:
//
//	en:
//	  contact:
//	    sent: "Your message has been sent."
//	fr:
//	  contact:
//	    sent: "Votre message a été envoyé."
//
// Files are merged in name order. Unknown language codes are rejected.
func NewTranslator(ctx context.Context, fsys fs.FS, opts ...Option) (*Translator, error) {
	t := &Translator{
		translations:  make(map[Lang]map[string]any, len(Langs)),
		defaultLang:   DefaultLang,
		fallbackToKey: true,
		logger:        slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDirectory, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		content, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, err)
		}
		if err := t.merge(entry.Name(), content); err != nil {
			return nil, err
		}
	}

	if len(t.translations) == 0 {
		return nil, ErrNoTranslations
	}

	t.logger.DebugContext(ctx, "translations loaded",
		logger.Component("i18n"),
		slog.Any("languages", t.Languages()),
	)
	return t, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func (t *Translator) merge(name string, content []byte) error {
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return errors.Join(ErrFailedToParseYAML, fmt.Errorf("%s: %w", name, err))
	}

	for code, val := range data {
		lang, err := ParseLang(code)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidTranslationFile, name, err)
		}
		tree, ok := val.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s: language %q: expected map, got %T",
				ErrInvalidTranslationFile, name, code, val)
		}
		if t.translations[lang] == nil {
			t.translations[lang] = make(map[string]any)
		}
		mergeTree(t.translations[lang], tree)
	}
	return nil
}

func mergeTree(dst, src map[string]any) {
	for k, v := range src {
		if sub, ok := v.(map[string]any); ok {
			if existing, ok := dst[k].(map[string]any); ok {
				mergeTree(existing, sub)
				continue
			}
		}
		dst[k] = v
	}
}

// Languages returns the loaded languages in Langs order.
func (t *Translator) Languages() []Lang {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Lang, 0, len(t.translations))
	for _, lang := range Langs {
		if _, ok := t.translations[lang]; ok {
			out = append(out, lang)
		}
	}
	return out
}

// Has reports whether key has a string translation in lang itself.
func (t *Translator) Has(lang Lang, key string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.lookup(lang, key)
	return ok
}

// T translates key into lang. args are name/value pairs substituted into
// %{name} placeholders. Missing keys fall back to the default language and
// then, unless disabled, to the key itself.
func (t *Translator) T(lang Lang, key string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.resolve(lang, key); ok {
		return sprintf(s, args)
	}
	if t.fallbackToKey {
		return sprintf(key, args)
	}
	return ""
}

// Td is T with an explicit fallback instead of the key.
func (t *Translator) Td(lang Lang, key, defaultValue string, args ...string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if s, ok := t.resolve(lang, key); ok {
		return sprintf(s, args)
	}
	return sprintf(defaultValue, args)
}

// Tc translates key into the language stored in ctx.
func (t *Translator) Tc(ctx context.Context, key string, args ...string) string {
	return t.T(LangFromContext(ctx), key, args...)
}

func (t *Translator) resolve(lang Lang, key string) (string, bool) {
	if s, ok := t.lookup(lang, key); ok {
		return s, true
	}
	if t.missingLogMode {
		t.logger.Warn("translation not found",
			logger.Component("i18n"),
			slog.String("lang", lang.Code()),
			slog.String("key", key),
		)
	}
	if lang != t.defaultLang {
		return t.lookup(t.defaultLang, key)
	}
	return "", false
}

func (t *Translator) lookup(lang Lang, key string) (string, bool) {
	tree, ok := t.translations[lang]
	if !ok {
		return "", false
	}
	val, ok := getTranslation(tree, key)
	if !ok {
		return "", false
	}
	switch v := val.(type) {
	case string:
		return v, true
	case fmt.Stringer:
		return v.String(), true
	case int, int64, float64, bool:
		return fmt.Sprint(v), true
	}
	return "", false
}

// getTranslation walks a nested map using dot-separated keys.
func getTranslation(m map[string]any, key string) (any, bool) {
	parts := strings.Split(key, ".")
	current := m

	for i, part := range parts {
		val, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return val, true
		}
		next, ok := val.(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return nil, false
}

var paramRegex = regexp.MustCompile(`%\{([^}]+)\}`)

// sprintf substitutes %{name} placeholders from name/value pairs. Unknown
// placeholders are left in place; an odd trailing argument is ignored.
func sprintf(tmpl string, args []string) string {
	if len(args) < 2 || !strings.Contains(tmpl, "%{") {
		return tmpl
	}

	params := make(map[string]string, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		params[args[i]] = args[i+1]
	}
	return paramRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if val, ok := params[match[2:len(match)-1]]; ok {
			return val
		}
		return match
	})
}
