package config

import "errors"

// Package-specific errors
var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrReadingRules is returned when the configured rules file cannot be read
	ErrReadingRules = errors.New("failed to read class-name rules file")

	// ErrParsingRules is returned when the rules file is not valid YAML
	ErrParsingRules = errors.New("failed to parse class-name rules file")
)
