package transport

import (
	"context"

	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/internal/transport/transportcore"
)

// Re-export context key and helpers from transportcore so external packages
// can import transport without creating cycles.

// IdentityContextKey is the context key for the verified caller identity.
const IdentityContextKey = transportcore.IdentityContextKey

// IdentityFromContext extracts the verified identity from the request context.
// Returns nil and false if no identity is present.
//
// This is used by handlers that need to know who the caller is.
func IdentityFromContext(ctx context.Context) (*identity.Identity, bool) {
	return transportcore.IdentityFromContext(ctx)
}

// ContextWithIdentity adds a verified identity to the request context.
// Returns a new context containing the identity.
//
// This is used by the authentication middleware after verification.
func ContextWithIdentity(ctx context.Context, ident *identity.Identity) context.Context {
	return transportcore.ContextWithIdentity(ctx, ident)
}
