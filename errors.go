package funnylog2

import "errors"

// Package-specific errors
var (
	// ErrInvalidReceiver is returned when WrapMethod is given an invalid receiver
	ErrInvalidReceiver = errors.New("receiver must be a valid value")

	// ErrUnknownMethod is returned when the named method does not exist on the receiver
	ErrUnknownMethod = errors.New("no such method on receiver")
)
