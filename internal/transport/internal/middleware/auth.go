// Package middleware provides HTTP middleware for the transport layer.
package middleware

import (
	"net/http"
	"strings"

	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/internal/transport/transportcore"
	"github.com/achievelist/achievelist/pkg/api"
)

// authMiddleware implements transportcore.AuthMiddleware.
type authMiddleware struct {
	verifier  identity.Verifier
	responder transportcore.ErrorResponder
}

// NewAuthMiddleware creates bearer-credential authentication middleware.
// It verifies credentials using the provided Verifier and stores the
// verified identity in the request context.
func NewAuthMiddleware(
	verifier identity.Verifier,
	responder transportcore.ErrorResponder,
) transportcore.AuthMiddleware {
	if verifier == nil {
		panic("verifier cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &authMiddleware{
		verifier:  verifier,
		responder: responder,
	}
}

// Authenticate validates the bearer credential and adds the identity to context.
// It extracts the credential from the Authorization header, verifies it, and
// stores the identity in the request context for downstream handlers.
//
// Returns 401 Unauthorized and halts the chain if verification fails.
func (m *authMiddleware) Authenticate() transportcore.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract credential from Authorization header
			token, err := extractBearerCredential(r)
			if err != nil {
				m.responder.Unauthorized(w, err)
				return
			}

			// Verify credential; failures are terminal for the request
			ident, err := m.verifier.Verify(r.Context(), token)
			if err != nil {
				m.responder.Unauthorized(w, err)
				return
			}

			// Add identity to request context
			ctx := transportcore.ContextWithIdentity(r.Context(), ident)
			r = r.WithContext(ctx)

			// Call next handler
			next.ServeHTTP(w, r)
		})
	}
}

// extractBearerCredential extracts the bearer credential from the Authorization header.
// Returns an error if the header is missing or not in the correct format.
//
// Format: Authorization: Bearer <credential>
func extractBearerCredential(r *http.Request) (string, error) {
	authHeader := r.Header.Get(api.HeaderAuthorization)
	if authHeader == "" {
		return "", transportcore.ErrMissingCredential
	}

	// Split header into scheme and credential
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", transportcore.ErrMalformedCredential
	}

	// Verify scheme is "Bearer" (case-insensitive per RFC 6750)
	if !strings.EqualFold(parts[0], api.BearerScheme) {
		return "", transportcore.ErrMalformedCredential
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", transportcore.ErrMissingCredential
	}

	return token, nil
}
