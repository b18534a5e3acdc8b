package synth

import "errors"

// Error kinds. Every error returned by this package wraps one of these, so
// callers can branch with errors.Is.
var (
	// ErrInvalidArgument reports a bad parameter: non-positive frequency,
	// zero harmonic count, mismatched series lengths, zero-sum mix weights.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfBounds reports a note deposit that does not fit the output buffer.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrResourceUnavailable reports missing input, e.g. a note file without notes.
	ErrResourceUnavailable = errors.New("resource unavailable")
)
