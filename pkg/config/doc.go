// Package config loads application settings from the environment into
// tagged structs.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//	type ServerConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[ServerConfig]()
//
// The first call to Load reads ".env" from the working directory when it
// exists; variables already present in the process environment win. Use
// LoadEnv to read other files explicitly, and WithEnvironment to parse from
// a fixed map in tests.
package config
