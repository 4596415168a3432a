package transportcore

import (
	"context"

	"github.com/achievelist/achievelist/internal/identity"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// IdentityContextKey is the context key for the verified caller identity.
	IdentityContextKey contextKey = "caller_identity"
)

// IdentityFromContext extracts the verified identity from the request context.
// Returns nil and false if no identity is present.
//
// This is used by handlers that need the authenticated subject identifier.
func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	ident, ok := ctx.Value(IdentityContextKey).(*identity.Identity)
	return ident, ok
}

// ContextWithIdentity adds a verified identity to the request context.
// Returns a new context containing the identity.
//
// This is used by the authentication middleware after successful verification.
func ContextWithIdentity(ctx context.Context, ident *identity.Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, IdentityContextKey, ident)
}
