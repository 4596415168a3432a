// Package mocks provides mock implementations for testing the transport layer.
package mocks

import (
	"context"
	"net/http"

	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/pkg/api"
)

// Verifier is a mock implementation of identity.Verifier.
type Verifier struct {
	VerifyFunc func(ctx context.Context, token string) (*identity.Identity, error)
}

// Verify calls the mock VerifyFunc.
func (m *Verifier) Verify(ctx context.Context, token string) (*identity.Identity, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	return &identity.Identity{Subject: "mock-subject"}, nil
}

// ErrorResponder is a mock implementation for error response handling.
type ErrorResponder struct {
	UnauthorizedCalled bool
	UnauthorizedErr    error
	BadRequestCalled   bool
	BadRequestErr      error
	UnavailableCalled  bool
	UnavailableErr     error
	InternalCalled     bool
	InternalErr        error
}

// Unauthorized records the call and writes a 401 response.
func (m *ErrorResponder) Unauthorized(w http.ResponseWriter, err error) {
	m.UnauthorizedCalled = true
	m.UnauthorizedErr = err
	w.Header().Set(api.HeaderWWWAuthenticate, api.BearerScheme)
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

// BadRequest records the call and writes a 400 response.
func (m *ErrorResponder) BadRequest(w http.ResponseWriter, err error) {
	m.BadRequestCalled = true
	m.BadRequestErr = err
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)
	_, _ = w.Write([]byte(`{"error":"validation_failed"}`))
}

// Unavailable records the call and writes a 503 response.
func (m *ErrorResponder) Unavailable(w http.ResponseWriter, err error) {
	m.UnavailableCalled = true
	m.UnavailableErr = err
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte(`{"error":"unavailable"}`))
}

// InternalError records the call and writes a 500 response.
func (m *ErrorResponder) InternalError(w http.ResponseWriter, err error) {
	m.InternalCalled = true
	m.InternalErr = err
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"internal_error"}`))
}
