package config

import "errors"

var (
	// ErrInvalidConfig wraps every validation failure, whether it comes from
	// defaults, the YAML file or the environment.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps unreadable or unparsable configuration sources.
	ErrLoadConfig = errors.New("load config failed")
)
