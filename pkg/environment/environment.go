package environment

import (
	"context"
	"strings"
)

// Environment represents application environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Parse maps common spellings to an Environment. Unknown values fall back
// to Development.
func Parse(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

func (e Environment) String() string {
	return string(e)
}

func (e Environment) IsDevelopment() bool {
	return e == Development
}

func (e Environment) IsProduction() bool {
	return e == Production
}

type contextKey struct{}

// WithContext adds environment to context.
func WithContext(ctx context.Context, env Environment) context.Context {
	return context.WithValue(ctx, contextKey{}, env)
}

// FromContext retrieves environment from context. The second value is false
// when none was attached.
func FromContext(ctx context.Context) (Environment, bool) {
	if ctx == nil {
		return "", false
	}
	env, ok := ctx.Value(contextKey{}).(Environment)
	return env, ok
}

// IsDevelopment reports whether ctx explicitly carries Development.
// A context without an environment is not treated as development.
func IsDevelopment(ctx context.Context) bool {
	env, ok := FromContext(ctx)
	return ok && env == Development
}

func IsProduction(ctx context.Context) bool {
	env, ok := FromContext(ctx)
	return ok && env == Production
}
