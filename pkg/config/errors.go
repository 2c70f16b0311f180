package config

import "errors"

var (
	ErrParsingConfig = errors.New("config: failed to parse environment variables into config")
	ErrLoadingEnv    = errors.New("config: failed to load env file")
)
