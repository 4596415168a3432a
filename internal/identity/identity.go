// Package identity provides credential verification against an external
// identity provider. The server acts as a resource server: it never issues
// credentials, it only verifies the signed bearer tokens the provider mints
// for signed-in users.
package identity

import (
	"context"
	"time"
)

// Verifier validates opaque bearer credentials.
// Implementations must verify the token signature against the provider's
// published keys, check issuer, audience, and expiry, and extract the
// stable subject identifier. Verification failures are terminal for the
// request; implementations never retry.
type Verifier interface {
	// Verify validates a bearer credential and returns the caller's identity.
	//
	// Returns an ErrUnauthorized domain error from internal/errors if the
	// credential is malformed, expired, or fails verification.
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Identity represents the verified identity asserted by a credential.
// All fields are populated from the token after successful verification.
type Identity struct {
	// Subject is the stable unique identifier for the authenticated user.
	// This is the sole authorization predicate for item ownership.
	Subject string

	// Email is the user's email address, when the provider embeds it.
	Email string

	// Name is the user's display name, when the provider embeds it.
	Name string

	// Issuer is the issuer (iss) claim of the verified credential.
	Issuer string

	// ExpiresAt is the expiration time (exp) claim.
	ExpiresAt time.Time

	// IssuedAt is the issued at (iat) claim.
	IssuedAt time.Time
}

// KeySource fetches and caches the identity provider's public signing keys.
// Implementations maintain an in-memory cache with TTL to keep verification
// off the network on the hot path while still respecting key rotation.
type KeySource interface {
	// GetKey retrieves a public key for the given key ID (kid).
	// It first checks the cache, and if not found or expired, fetches
	// the key set from the provider.
	//
	// Returns the public key (typically *rsa.PublicKey or *ecdsa.PublicKey)
	// suitable for signature verification.
	GetKey(ctx context.Context, keyID string) (any, error)

	// RefreshKeys forces a refresh of the key cache from the provider.
	// Useful after a verification failure that might be due to key rotation.
	RefreshKeys(ctx context.Context) error
}
