// Package api provides shared HTTP types and constants for the achievelist server.
package api

// HTTP header names.
const (
	// HeaderAuthorization is the Authorization HTTP header name.
	HeaderAuthorization = "Authorization"

	// HeaderWWWAuthenticate is the WWW-Authenticate HTTP header name.
	HeaderWWWAuthenticate = "WWW-Authenticate"

	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"

	// HeaderAllow is the Allow HTTP header name, sent with 405 responses.
	HeaderAllow = "Allow"

	// HeaderRequestID is the X-Request-Id HTTP header name.
	HeaderRequestID = "X-Request-Id"
)

// Credential scheme constants per RFC 6750.
const (
	// BearerScheme is the authorization scheme for bearer credentials.
	BearerScheme = "Bearer"
)

// Content type constants.
const (
	// ContentTypeJSON is the application/json content type.
	ContentTypeJSON = "application/json"
)

// Machine-readable error reasons returned in JSON error bodies.
const (
	// ReasonUnauthorized indicates a missing, malformed, or unverifiable credential.
	ReasonUnauthorized = "unauthorized"

	// ReasonValidation indicates a malformed request payload.
	ReasonValidation = "validation_failed"

	// ReasonUnavailable indicates the backing store could not be reached.
	ReasonUnavailable = "unavailable"

	// ReasonInternal indicates an unexpected server-side failure.
	ReasonInternal = "internal_error"
)
