// Package identityerr provides error constructors for credential verification.
// This package is separate from internal/identity so the internal subpackages
// can create identity errors without an import cycle.
package identityerr

import (
	"fmt"

	ierrors "github.com/achievelist/achievelist/internal/errors"
)

// Domain identifier for identity errors.
const domainIdentity = "identity"

// NewInvalidCredentialError creates a DomainError for a malformed or unverifiable credential.
func NewInvalidCredentialError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, err).
		WithContext("reason", "invalid_credential")
}

// NewCredentialExpiredError creates a DomainError for an expired credential.
func NewCredentialExpiredError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, err).
		WithContext("reason", "credential_expired")
}

// NewInvalidSignatureError creates a DomainError for a signature verification failure.
func NewInvalidSignatureError(op string, err error) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, err).
		WithContext("reason", "invalid_signature")
}

// NewUnsupportedAlgorithmError creates a DomainError for an unsupported signing algorithm.
func NewUnsupportedAlgorithmError(op string, algorithm string) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, fmt.Errorf("unsupported algorithm")).
		WithContext("reason", "unsupported_algorithm").
		WithContext("algorithm", algorithm)
}

// NewMissingClaimError creates a DomainError for a missing required claim.
func NewMissingClaimError(op string, claim string) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, fmt.Errorf("missing claim: %s", claim)).
		WithContext("reason", "missing_claim").
		WithContext("missing_claim", claim)
}

// NewInvalidIssuerError creates a DomainError for an issuer mismatch.
func NewInvalidIssuerError(op string, expected, actual string) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, fmt.Errorf("invalid issuer")).
		WithContext("reason", "invalid_issuer").
		WithContext("expected_issuer", expected).
		WithContext("actual_issuer", actual)
}

// NewInvalidAudienceError creates a DomainError for an audience mismatch.
func NewInvalidAudienceError(op string, expected string, actual []string) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, fmt.Errorf("invalid audience")).
		WithContext("reason", "invalid_audience").
		WithContext("expected_audience", expected).
		WithContext("actual_audience", actual)
}

// NewKeyNotFoundError creates a DomainError for a signing key that could not be located.
func NewKeyNotFoundError(op string, keyID string) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrUnauthorized, fmt.Errorf("key not found")).
		WithContext("reason", "key_not_found").
		WithContext("key_id", keyID)
}

// NewKeyFetchError creates a DomainError for a key set fetch failure.
func NewKeyFetchError(op string, keysURL string, err error) *ierrors.DomainError {
	return ierrors.New(domainIdentity, op, ierrors.ErrInternal, fmt.Errorf("key fetch failed: %v", err)).
		WithContext("keys_url", keysURL)
}
