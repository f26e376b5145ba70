package tracelog

import "errors"

// Package-specific errors
var (
	// ErrCreatingLogDir is returned when the log directory cannot be created
	ErrCreatingLogDir = errors.New("failed to create log directory")
)
