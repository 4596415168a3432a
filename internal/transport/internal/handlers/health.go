package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/achievelist/achievelist/pkg/api"
)

// healthResponse represents the JSON response for health checks.
type healthResponse struct {
	Status string `json:"status"`
}

// healthHandler provides a simple health check endpoint.
type healthHandler struct{}

// NewHealthHandler creates a handler for the /health endpoint.
// It returns a simple JSON response indicating the server is healthy.
func NewHealthHandler() http.Handler {
	return &healthHandler{}
}

// ServeHTTP handles GET requests for health checks.
// Only GET method is allowed.
func (h *healthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set(api.HeaderAllow, http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)

	resp := healthResponse{Status: "ok"}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode health response", "error", err)
	}
}
