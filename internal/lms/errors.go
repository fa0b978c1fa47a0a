package lms

import "errors"

// Domain errors for the lms package.
var (
	// ErrUnreachable is returned when the media server cannot be reached
	// or answers with a non-success status.
	ErrUnreachable = errors.New("lms: server unreachable")

	// ErrBadResponse is returned when the server answers with something
	// that is not a JSON-RPC result.
	ErrBadResponse = errors.New("lms: malformed response")
)
