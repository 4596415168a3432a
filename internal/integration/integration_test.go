// Package integration verifies the full stack works when all components are
// wired together: credential verification, the middleware chain, routing, and
// the item operations over a repository.
package integration

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/achievelist/achievelist/internal/config"
	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/internal/items"
	"github.com/achievelist/achievelist/internal/transport"
	"github.com/achievelist/achievelist/pkg/api"
)

// testKeyID is the key ID used for test credentials.
const testKeyID = "test-key-1"

// testFixture contains all dependencies for integration tests.
type testFixture struct {
	server     *httptest.Server
	repo       *items.MemoryRepository
	privateKey *rsa.PrivateKey
	baseURL    string
	issuer     string
	audience   string
}

// staticKeySource serves the fixture's public key without any network access.
type staticKeySource struct {
	publicKey *rsa.PublicKey
}

func (s *staticKeySource) GetKey(_ context.Context, keyID string) (any, error) {
	if keyID != testKeyID {
		return nil, fmt.Errorf("key not found: %s", keyID)
	}
	return s.publicKey, nil
}

func (s *staticKeySource) RefreshKeys(_ context.Context) error {
	return nil
}

// setupTestFixture creates a test fixture with all components wired together.
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	issuer := "https://accounts.example.com"
	audience := "achievelist-api"

	identityCfg := &identity.Config{
		Issuer:       issuer,
		Audience:     audience,
		JWKSURL:      "https://accounts.example.com/jwks",
		KeysCacheTTL: time.Hour,
		ClockSkew:    time.Minute,
	}
	verifier := identity.NewVerifier(identityCfg, &staticKeySource{publicKey: &privateKey.PublicKey})

	repo := items.NewMemoryRepository()
	service := items.NewService(repo)

	serverCfg := &config.Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	_, router, err := transport.NewTransportServices(&transport.Config{
		ServerConfig: serverCfg,
		Verifier:     verifier,
		ItemService:  service,
	})
	if err != nil {
		t.Fatalf("failed to create transport services: %v", err)
	}

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testFixture{
		server:     server,
		repo:       repo,
		privateKey: privateKey,
		baseURL:    server.URL,
		issuer:     issuer,
		audience:   audience,
	}
}

// createToken creates a signed credential for testing. Claims supplied by
// the caller override the defaults.
func (f *testFixture) createToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	if claims == nil {
		claims = jwt.MapClaims{}
	}

	now := time.Now()
	if _, ok := claims["iss"]; !ok {
		claims["iss"] = f.issuer
	}
	if _, ok := claims["sub"]; !ok {
		claims["sub"] = "test-user"
	}
	if _, ok := claims["aud"]; !ok {
		claims["aud"] = f.audience
	}
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = now.Add(time.Hour).Unix()
	}
	if _, ok := claims["iat"]; !ok {
		claims["iat"] = now.Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = testKeyID

	tokenString, err := token.SignedString(f.privateKey)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tokenString
}

// do performs an HTTP request against the fixture server.
func (f *testFixture) do(t *testing.T, method, path, token, body string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, f.baseURL+path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set(api.HeaderAuthorization, "Bearer "+token)
	}
	if body != "" {
		req.Header.Set(api.HeaderContentType, api.ContentTypeJSON)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestIntegration_HealthEndpoint(t *testing.T) {
	f := setupTestFixture(t)

	resp := f.do(t, http.MethodGet, "/health", "", "")

	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
	body := decodeJSON[map[string]any](t, resp)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestIntegration_ItemsRequireAuthentication(t *testing.T) {
	f := setupTestFixture(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no credential", ""},
		{"garbage credential", "not-a-real-token"},
		{"expired credential", f.createToken(t, jwt.MapClaims{
			"exp": time.Now().Add(-time.Hour).Unix(),
			"iat": time.Now().Add(-2 * time.Hour).Unix(),
		})},
		{"wrong audience", f.createToken(t, jwt.MapClaims{"aud": "another-api"})},
		{"wrong issuer", f.createToken(t, jwt.MapClaims{"iss": "https://evil.example.com"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, http.MethodGet, "/items", tt.token, "")

			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", resp.StatusCode)
			}
			if got := resp.Header.Get(api.HeaderWWWAuthenticate); got == "" {
				t.Error("401 response missing WWW-Authenticate header")
			}

			// The body must not disclose why verification failed.
			raw, _ := io.ReadAll(resp.Body)
			for _, leak := range []string{"expired", "audience", "issuer", "signature"} {
				if strings.Contains(strings.ToLower(string(raw)), leak) {
					t.Errorf("body %q leaks failure detail %q", raw, leak)
				}
			}
		})
	}
}

func TestIntegration_ItemLifecycle(t *testing.T) {
	f := setupTestFixture(t)
	token := f.createToken(t, nil)

	// Empty list first
	resp := f.do(t, http.MethodGet, "/items", token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list status = %d, want 200", resp.StatusCode)
	}
	if listed := decodeJSON[[]items.Item](t, resp); len(listed) != 0 {
		t.Fatalf("expected empty list, got %d items", len(listed))
	}

	// Create
	resp = f.do(t, http.MethodPost, "/items", token, `{"name":"Learn to sail","description":"on a dinghy"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	created := decodeJSON[items.Item](t, resp)
	if created.Name != "Learn to sail" {
		t.Errorf("name = %q", created.Name)
	}
	if created.Owner != "test-user" {
		t.Errorf("owner = %q, want test-user", created.Owner)
	}
	if created.Completed {
		t.Error("completed should default to false")
	}
	id := created.ID.Hex()

	// Update
	resp = f.do(t, http.MethodPatch, "/items?id="+id, token, `{"completed":true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, want 200", resp.StatusCode)
	}
	updated := decodeJSON[items.UpdateResult](t, resp)
	if updated.Matched != 1 || updated.Modified != 1 {
		t.Errorf("update result = %+v, want matched=1 modified=1", updated)
	}

	// List shows the updated item
	resp = f.do(t, http.MethodGet, "/items", token, "")
	listed := decodeJSON[[]items.Item](t, resp)
	if len(listed) != 1 {
		t.Fatalf("listed %d items, want 1", len(listed))
	}
	if !listed[0].Completed {
		t.Error("completed flag not visible in the listing")
	}

	// Delete
	resp = f.do(t, http.MethodDelete, "/items?id="+id, token, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", resp.StatusCode)
	}
	deleted := decodeJSON[items.DeleteResult](t, resp)
	if deleted.Deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted.Deleted)
	}

	// Gone
	resp = f.do(t, http.MethodGet, "/items", token, "")
	if listed := decodeJSON[[]items.Item](t, resp); len(listed) != 0 {
		t.Errorf("expected empty list after delete, got %d items", len(listed))
	}
}

func TestIntegration_OwnershipIsolation(t *testing.T) {
	f := setupTestFixture(t)

	alice := f.createToken(t, jwt.MapClaims{"sub": "alice"})
	mallory := f.createToken(t, jwt.MapClaims{"sub": "mallory"})

	resp := f.do(t, http.MethodPost, "/items", alice, `{"name":"alice's goal"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d", resp.StatusCode)
	}
	created := decodeJSON[items.Item](t, resp)
	id := created.ID.Hex()

	// Mallory cannot see it
	resp = f.do(t, http.MethodGet, "/items", mallory, "")
	if listed := decodeJSON[[]items.Item](t, resp); len(listed) != 0 {
		t.Errorf("foreign item leaked into mallory's list")
	}

	// Mallory's update is a zero-affected success
	resp = f.do(t, http.MethodPatch, "/items?id="+id, mallory, `{"name":"stolen"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("foreign update status = %d, want 200", resp.StatusCode)
	}
	if result := decodeJSON[items.UpdateResult](t, resp); result.Matched != 0 {
		t.Errorf("foreign update result = %+v, want zero affected", result)
	}

	// Mallory's delete is a zero-affected success
	resp = f.do(t, http.MethodDelete, "/items?id="+id, mallory, "")
	if result := decodeJSON[items.DeleteResult](t, resp); result.Deleted != 0 {
		t.Errorf("foreign delete result = %+v, want zero affected", result)
	}

	// Alice still owns an intact item
	stored, ok := f.repo.Get(id)
	if !ok {
		t.Fatal("item vanished")
	}
	if stored.Name != "alice's goal" {
		t.Errorf("item mutated: name = %q", stored.Name)
	}
}

func TestIntegration_ValidationErrors(t *testing.T) {
	f := setupTestFixture(t)
	token := f.createToken(t, nil)

	tests := []struct {
		name      string
		method    string
		path      string
		body      string
		wantField string
	}{
		{"create without name", http.MethodPost, "/items", `{"description":"x"}`, "name"},
		{"create malformed json", http.MethodPost, "/items", `{`, "body"},
		{"update without id", http.MethodPatch, "/items", `{"completed":true}`, "id"},
		{"delete without id", http.MethodDelete, "/items", "", "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, tt.method, tt.path, token, tt.body)

			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			body := decodeJSON[map[string]any](t, resp)
			if body["error"] != api.ReasonValidation {
				t.Errorf("error = %v, want %v", body["error"], api.ReasonValidation)
			}
			fields, _ := body["fields"].([]any)
			found := false
			for _, raw := range fields {
				if entry, ok := raw.(map[string]any); ok && entry["field"] == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("fields %v do not name %q", fields, tt.wantField)
			}
		})
	}
}

func TestIntegration_MethodNotAllowed(t *testing.T) {
	f := setupTestFixture(t)
	token := f.createToken(t, nil)

	resp := f.do(t, http.MethodPut, "/items", token, `{"name":"x"}`)

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
	allow := resp.Header.Get(api.HeaderAllow)
	for _, m := range []string{"GET", "POST", "PATCH", "DELETE"} {
		if !strings.Contains(allow, m) {
			t.Errorf("Allow header %q missing %s", allow, m)
		}
	}
}

func TestIntegration_RequestIDHeader(t *testing.T) {
	f := setupTestFixture(t)

	resp := f.do(t, http.MethodGet, "/health", "", "")

	if resp.Header.Get(api.HeaderRequestID) == "" {
		t.Error("response missing X-Request-Id header")
	}
}
