package model

import "errors"

// Error taxonomy shared by the fraction, dex, route and price packages.
// Call sites wrap these with fmt.Errorf("%w: ...") so callers can match
// with errors.Is.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrArithmetic         = errors.New("arithmetic error")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrLockFailure        = errors.New("lock failure")
)
