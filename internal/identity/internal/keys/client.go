// Package keys fetches and caches the identity provider's public signing keys.
package keys

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/achievelist/achievelist/internal/identity/identityerr"
)

// JWKS represents a JSON Web Key Set.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single JSON Web Key.
type JWK struct {
	KeyType   string `json:"kty"`
	Use       string `json:"use,omitempty"`
	KeyID     string `json:"kid"`
	Algorithm string `json:"alg,omitempty"`
	// RSA public key parameters
	N string `json:"n,omitempty"` // modulus
	E string `json:"e,omitempty"` // exponent
	// EC public key parameters
	Curve string `json:"crv,omitempty"` // curve name
	X     string `json:"x,omitempty"`   // x coordinate
	Y     string `json:"y,omitempty"`   // y coordinate
}

// Client fetches and caches the key set published at a fixed provider URL.
type Client struct {
	httpClient *http.Client
	cache      *Cache
	keysURL    string

	// group coalesces concurrent fetches for a cold or expired cache so a
	// warm-start burst issues a single upstream request.
	group singleflight.Group
}

// NewClient creates a new key client for the given JWKS URL.
func NewClient(keysURL string, cacheTTL time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cache:   NewCache(cacheTTL),
		keysURL: keysURL,
	}
}

// GetKey retrieves a public key for the given key ID.
// It first checks the cache, then fetches the provider's key set if needed.
func (c *Client) GetKey(ctx context.Context, keyID string) (any, error) {
	if keyID == "" {
		return nil, identityerr.NewKeyNotFoundError("GetKey", "key ID is required")
	}

	if key := c.cache.Get(keyID); key != nil {
		return key, nil
	}

	// All concurrent misses share one fetch.
	_, err, _ := c.group.Do("fetch", func() (any, error) {
		// A racing caller may have already populated the cache.
		if key := c.cache.Get(keyID); key != nil {
			return nil, nil
		}
		return nil, c.fetchAndCacheAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	if key := c.cache.Get(keyID); key != nil {
		return key, nil
	}
	return nil, identityerr.NewKeyNotFoundError("GetKey", keyID)
}

// RefreshKeys forces a refresh of the key cache from the provider.
func (c *Client) RefreshKeys(ctx context.Context) error {
	c.cache.Clear()
	_, err, _ := c.group.Do("fetch", func() (any, error) {
		return nil, c.fetchAndCacheAll(ctx)
	})
	return err
}

// fetchAndCacheAll fetches the key set and caches every parseable key.
func (c *Client) fetchAndCacheAll(ctx context.Context) error {
	jwks, err := c.fetchJWKS(ctx)
	if err != nil {
		return err
	}

	for _, jwk := range jwks.Keys {
		if jwk.KeyID == "" {
			continue
		}
		key, err := c.jwkToPublicKey(&jwk)
		if err != nil {
			// Skip invalid keys
			continue
		}
		c.cache.Set(jwk.KeyID, key)
	}

	return nil
}

// fetchJWKS fetches the key set from the configured URL.
func (c *Client) fetchJWKS(ctx context.Context) (*JWKS, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keysURL, nil)
	if err != nil {
		return nil, identityerr.NewKeyFetchError("fetchJWKS", c.keysURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, identityerr.NewKeyFetchError("fetchJWKS", c.keysURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, identityerr.NewKeyFetchError("fetchJWKS", c.keysURL,
			fmt.Errorf("keys endpoint returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, identityerr.NewKeyFetchError("fetchJWKS", c.keysURL, err)
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return nil, identityerr.NewKeyFetchError("fetchJWKS", c.keysURL, err)
	}

	return &jwks, nil
}

// jwkToPublicKey converts a JWK to a public key interface.
func (c *Client) jwkToPublicKey(jwk *JWK) (any, error) {
	switch jwk.KeyType {
	case "RSA":
		return c.jwkToRSAPublicKey(jwk)
	case "EC":
		return c.jwkToECDSAPublicKey(jwk)
	default:
		return nil, fmt.Errorf("unsupported key type: %s", jwk.KeyType)
	}
}

// jwkToRSAPublicKey converts a JWK to an RSA public key.
func (c *Client) jwkToRSAPublicKey(jwk *JWK) (*rsa.PublicKey, error) {
	if jwk.N == "" || jwk.E == "" {
		return nil, fmt.Errorf("missing RSA key parameters")
	}

	nBytes, err := base64URLDecode(jwk.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64URLDecode(jwk.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	return &rsa.PublicKey{
		N: n,
		E: int(e.Int64()),
	}, nil
}

// jwkToECDSAPublicKey converts a JWK to an ECDSA public key.
func (c *Client) jwkToECDSAPublicKey(jwk *JWK) (*ecdsa.PublicKey, error) {
	if jwk.X == "" || jwk.Y == "" || jwk.Curve == "" {
		return nil, fmt.Errorf("missing EC key parameters")
	}

	xBytes, err := base64URLDecode(jwk.X)
	if err != nil {
		return nil, fmt.Errorf("failed to decode x coordinate: %w", err)
	}

	yBytes, err := base64URLDecode(jwk.Y)
	if err != nil {
		return nil, fmt.Errorf("failed to decode y coordinate: %w", err)
	}

	x := new(big.Int).SetBytes(xBytes)
	y := new(big.Int).SetBytes(yBytes)

	curve, err := getCurve(jwk.Curve)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{
		Curve: curve,
		X:     x,
		Y:     y,
	}, nil
}
