// Package token implements signed-credential verification for the identity layer.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/achievelist/achievelist/internal/identity/identityerr"
)

// KeySource defines the interface for fetching signing keys.
// This avoids importing the parent identity package.
type KeySource interface {
	GetKey(ctx context.Context, keyID string) (any, error)
	RefreshKeys(ctx context.Context) error
}

// Identity represents the verified identity asserted by a credential.
type Identity struct {
	Subject   string
	Email     string
	Name      string
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// Whitelisted signing algorithms. Identity providers sign ID tokens with
// asymmetric algorithms only; accepting anything else opens the door to
// algorithm confusion attacks.
var allowedAlgorithms = map[string]bool{
	"RS256": true,
	"RS384": true,
	"RS512": true,
	"ES256": true,
	"ES384": true,
	"ES512": true,
}

// Verifier validates bearer credentials issued by the identity provider.
type Verifier struct {
	keys      KeySource
	issuer    string
	audience  string
	clockSkew time.Duration
}

// NewVerifier creates a new credential verifier.
func NewVerifier(keys KeySource, issuer, audience string, clockSkew time.Duration) *Verifier {
	return &Verifier{
		keys:      keys,
		issuer:    issuer,
		audience:  audience,
		clockSkew: clockSkew,
	}
}

// Verify validates a credential and returns the caller's identity.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (*Identity, error) {
	// Parse without verification first to get the header
	parser := jwt.NewParser(
		jwt.WithoutClaimsValidation(),
	)

	token, _, err := parser.ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, identityerr.NewInvalidCredentialError("Verify", fmt.Errorf("failed to parse token: %w", err))
	}

	// Validate algorithm is whitelisted
	alg, ok := token.Header["alg"].(string)
	if !ok || alg == "" {
		return nil, identityerr.NewUnsupportedAlgorithmError("Verify", "none")
	}
	if !allowedAlgorithms[alg] {
		return nil, identityerr.NewUnsupportedAlgorithmError("Verify", alg)
	}

	// Get key ID from header
	kid, ok := token.Header["kid"].(string)
	if !ok || kid == "" {
		return nil, identityerr.NewInvalidCredentialError("Verify", fmt.Errorf("missing kid in token header"))
	}

	// Fetch the public key
	key, err := v.keys.GetKey(ctx, kid)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, identityerr.NewKeyNotFoundError("Verify", kid)
	}

	// Parse and validate the token with the public key
	validatedToken, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		// Verify the algorithm matches what we expect
		if t.Method.Alg() != alg {
			return nil, identityerr.NewUnsupportedAlgorithmError("Verify", t.Method.Alg())
		}
		return key, nil
	}, jwt.WithLeeway(v.clockSkew))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, identityerr.NewCredentialExpiredError("Verify", err)
		}
		return nil, identityerr.NewInvalidSignatureError("Verify", err)
	}

	if !validatedToken.Valid {
		return nil, identityerr.NewInvalidCredentialError("Verify", fmt.Errorf("token is invalid"))
	}

	mapClaims, ok := validatedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, identityerr.NewInvalidCredentialError("Verify", fmt.Errorf("invalid claims type"))
	}

	return v.extractIdentity(mapClaims)
}

// extractIdentity builds an Identity from JWT MapClaims, enforcing the
// issuer and audience bindings along the way.
func (v *Verifier) extractIdentity(mapClaims jwt.MapClaims) (*Identity, error) {
	ident := &Identity{}

	// Extract subject (required)
	sub, err := mapClaims.GetSubject()
	if err != nil || sub == "" {
		return nil, identityerr.NewMissingClaimError("extractIdentity", "sub")
	}
	ident.Subject = sub

	// Extract and validate issuer (required)
	iss, err := mapClaims.GetIssuer()
	if err != nil || iss == "" {
		return nil, identityerr.NewMissingClaimError("extractIdentity", "iss")
	}
	if iss != v.issuer {
		return nil, identityerr.NewInvalidIssuerError("extractIdentity", v.issuer, iss)
	}
	ident.Issuer = iss

	// Extract and validate audience (required)
	aud, err := mapClaims.GetAudience()
	if err != nil || len(aud) == 0 {
		return nil, identityerr.NewMissingClaimError("extractIdentity", "aud")
	}
	if !containsAudience(aud, v.audience) {
		return nil, identityerr.NewInvalidAudienceError("extractIdentity", v.audience, aud)
	}

	// Extract expiration time (required)
	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, identityerr.NewMissingClaimError("extractIdentity", "exp")
	}
	ident.ExpiresAt = exp.Time

	// Extract issued at (optional)
	iat, err := mapClaims.GetIssuedAt()
	if err == nil && iat != nil {
		ident.IssuedAt = iat.Time
	}

	// Extract profile claims (optional)
	if email, ok := mapClaims["email"].(string); ok {
		ident.Email = email
	}
	if name, ok := mapClaims["name"].(string); ok {
		ident.Name = name
	}

	return ident, nil
}

// containsAudience checks if the expected audience is present in the token's audience claim.
func containsAudience(audiences []string, expected string) bool {
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	return false
}
