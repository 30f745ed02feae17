package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidLogLevel  = goerr.New("invalid log level")
	ErrInvalidLogFormat = goerr.New("invalid log format")
	ErrInvalidBackend   = goerr.New("invalid repository backend")
	ErrInvalidLLMConfig = goerr.New("invalid LLM configuration")
	ErrInvalidAppConfig = goerr.New("invalid application configuration")
)
