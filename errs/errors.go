// Package errs defines the error values returned by the bts packages.
//
// Every error kind is a sentinel; call sites wrap it with context using
// fmt.Errorf("%w: ...") so callers can match with errors.Is.
package errs

import "errors"

// Decode errors. A record that produces one of these cannot be read by the
// codec and no recovery is attempted.
var (
	ErrUnknownTypeTag     = errors.New("unknown type tag")
	ErrEndiannessMismatch = errors.New("endianness mismatch")
	ErrInvalidTimeDtype   = errors.New("invalid time dtype")
	ErrInvalidDataDtype   = errors.New("invalid data dtype")
	ErrTruncatedBuffer    = errors.New("truncated buffer")
)

// Contract violations reported synchronously to the caller.
var (
	ErrSampleCountMismatch = errors.New("sample count mismatch")
	ErrInvalidScaling      = errors.New("invalid scaling parameters")
	ErrDTypeMismatch       = errors.New("dtype mismatch")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrInvalidTimebase     = errors.New("invalid timebase")
	ErrInvalidBound        = errors.New("invalid time bound")
	ErrTooManySamples      = errors.New("too many samples")
	ErrInvalidOffset       = errors.New("invalid cursor offset")
)
