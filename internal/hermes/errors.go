package hermes

import "errors"

// Domain errors for the hermes package.
var (
	// ErrMalformedMessage is returned when a payload cannot be decoded.
	ErrMalformedMessage = errors.New("hermes: malformed message")

	// ErrPublishFailed is returned when a dialogue message could not be
	// handed to the transport.
	ErrPublishFailed = errors.New("hermes: publish failed")
)
