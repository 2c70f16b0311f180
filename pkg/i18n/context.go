package i18n

import "context"

type langContextKey struct{}

// WithLang stores lang in ctx.
func WithLang(ctx context.Context, lang Lang) context.Context {
	return context.WithValue(ctx, langContextKey{}, lang)
}

// LangFromContext returns the language stored in ctx, or DefaultLang.
func LangFromContext(ctx context.Context) Lang {
	if lang, ok := ctx.Value(langContextKey{}).(Lang); ok && lang.Valid() {
		return lang
	}
	return DefaultLang
}
