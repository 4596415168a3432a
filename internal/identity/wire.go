package identity

import (
	"context"
	"time"

	"github.com/achievelist/achievelist/internal/identity/internal/keys"
	"github.com/achievelist/achievelist/internal/identity/internal/token"
)

// verifierAdapter adapts token.Verifier to the identity.Verifier interface.
type verifierAdapter struct {
	verifier *token.Verifier
}

func (a *verifierAdapter) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	ident, err := a.verifier.Verify(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	// Convert token.Identity to identity.Identity
	return &Identity{
		Subject:   ident.Subject,
		Email:     ident.Email,
		Name:      ident.Name,
		Issuer:    ident.Issuer,
		ExpiresAt: ident.ExpiresAt,
		IssuedAt:  ident.IssuedAt,
	}, nil
}

// Config holds the configuration needed to construct identity services.
type Config struct {
	// Issuer is the expected issuer (iss) claim in credentials.
	Issuer string

	// Audience is the expected audience (aud) claim in credentials.
	Audience string

	// JWKSURL is the URL where the provider publishes its signing keys.
	JWKSURL string

	// KeysCacheTTL is how long to cache signing keys.
	KeysCacheTTL time.Duration

	// ClockSkew is the allowed clock skew for expiry validation.
	ClockSkew time.Duration
}

// NewKeySource creates a key source backed by the provider's JWKS endpoint.
// Keys are cached for the configured TTL; concurrent cold-cache fetches are
// coalesced into one upstream request.
func NewKeySource(cfg *Config) KeySource {
	return keys.NewClient(cfg.JWKSURL, cfg.KeysCacheTTL)
}

// NewVerifier creates a credential verifier with the provided configuration.
// The verifier uses the key source to verify signatures and validates the
// issuer, audience, and expiry claims.
func NewVerifier(cfg *Config, keySource KeySource) Verifier {
	verifier := token.NewVerifier(keySource, cfg.Issuer, cfg.Audience, cfg.ClockSkew)
	return &verifierAdapter{verifier: verifier}
}

// NewIdentityServices creates all identity services from the configuration.
// This is a convenience function for dependency injection.
func NewIdentityServices(cfg *Config) (Verifier, KeySource) {
	keySource := NewKeySource(cfg)
	verifier := NewVerifier(cfg, keySource)
	return verifier, keySource
}
