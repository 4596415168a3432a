package transportcore

import (
	"errors"
)

// Sentinel errors for transport operations.
// These are used for error identification and testing.
var (
	// ErrMissingCredential indicates the Authorization header is missing or empty.
	ErrMissingCredential = errors.New("missing bearer credential")

	// ErrMalformedCredential indicates the Authorization header is not a Bearer credential.
	ErrMalformedCredential = errors.New("malformed bearer credential")

	// ErrMethodNotAllowed indicates the HTTP method is not allowed for the endpoint.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrServerClosed indicates the server has been closed and cannot accept requests.
	ErrServerClosed = errors.New("server closed")
)
