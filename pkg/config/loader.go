package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var defaultEnvLoaded sync.Once

// Option adjusts how a single Load call parses.
type Option func(*env.Options)

// WithPrefix prepends prefix to every variable name of the struct.
func WithPrefix(prefix string) Option {
	return func(o *env.Options) {
		o.Prefix = prefix
	}
}

// WithEnvironment parses from vars instead of the process environment.
// The default .env file is not read in that case.
func WithEnvironment(vars map[string]string) Option {
	return func(o *env.Options) {
		o.Environment = vars
	}
}

// LoadEnv reads the given env files into the process environment. Later
// files override earlier ones; variables set before the call are kept.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	merged := make(map[string]string)
	for _, p := range paths {
		vars, err := godotenv.Read(p)
		if err != nil {
			return errors.Join(ErrLoadingEnv, fmt.Errorf("%s: %w", p, err))
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	for k, v := range merged {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return errors.Join(ErrLoadingEnv, err)
		}
	}
	return nil
}

// Load parses the environment into a new T.
//
//	type DatabaseConfig struct {
//		URL string `env:"REDIS_URL"`
//	}
func Load[T any](opts ...Option) (T, error) {
	var o env.Options
	for _, opt := range opts {
		opt(&o)
	}
	if o.Environment == nil {
		defaultEnvLoaded.Do(func() {
			// A missing .env is fine.
			_ = godotenv.Load()
		})
	}

	v, err := env.ParseAsWithOptions[T](o)
	if err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad is Load for settings the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return v
}
