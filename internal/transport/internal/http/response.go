package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/achievelist/achievelist/internal/items"
	"github.com/achievelist/achievelist/internal/transport/transportcore"
	"github.com/achievelist/achievelist/pkg/api"
)

// errorResponse represents a JSON error response body.
// Fields is populated only for validation failures.
type errorResponse struct {
	Error   string             `json:"error"`
	Message string             `json:"message,omitempty"`
	Fields  []items.FieldError `json:"fields,omitempty"`
}

// errorResponder implements transportcore.ErrorResponder.
type errorResponder struct{}

// NewErrorResponder creates a new error responder.
func NewErrorResponder() transportcore.ErrorResponder {
	return &errorResponder{}
}

// Unauthorized sends a 401 Unauthorized response with a WWW-Authenticate
// header per RFC 6750 Section 3.
//
// The body is generic regardless of the verification failure: exposing the
// decoded reason would hand an attacker an oracle for probing credentials.
func (e *errorResponder) Unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set(api.HeaderWWWAuthenticate, api.BearerScheme)
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusUnauthorized)

	// The genuine reason goes to the log, never to the client.
	slog.Warn("unauthorized request", "error", err)

	resp := errorResponse{
		Error:   api.ReasonUnauthorized,
		Message: "Authentication required",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// BadRequest sends a 400 Bad Request response. When err is a validation
// error, the body enumerates the failing fields.
func (e *errorResponder) BadRequest(w http.ResponseWriter, err error) {
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusBadRequest)

	slog.Warn("bad request", "error", err)

	resp := errorResponse{
		Error:   api.ReasonValidation,
		Message: "Invalid request",
	}
	var verr *items.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// Unavailable sends a 503 Service Unavailable response.
// Used when the backing store connection cannot be established; the
// connection cache stays empty so a later request retries.
func (e *errorResponder) Unavailable(w http.ResponseWriter, err error) {
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusServiceUnavailable)

	slog.Error("store unavailable", "error", err)

	resp := errorResponse{
		Error:   api.ReasonUnavailable,
		Message: "Service temporarily unavailable",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}

// InternalError sends a 500 Internal Server Error response.
// The response body contains a JSON error message.
func (e *errorResponder) InternalError(w http.ResponseWriter, err error) {
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)

	slog.Error("internal server error", "error", err)

	resp := errorResponse{
		Error:   api.ReasonInternal,
		Message: "An internal server error occurred",
	}
	if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
		slog.Error("failed to encode error response", "error", encodeErr)
	}
}
