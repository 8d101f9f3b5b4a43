// Package errs holds the error taxonomy shared by the order core and its transports.
package errs

import "errors"

var (
	// ErrInvalidInput is returned for malformed or out-of-range booking input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a referenced order or restaurant does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a requested transition violates the order state machine.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrCancellationUnavailable is returned when an order can no longer be cancelled.
	ErrCancellationUnavailable = errors.New("cancellation unavailable")
)
