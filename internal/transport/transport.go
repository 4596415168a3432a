// Package transport provides the HTTP transport layer for the achievement
// item server. It ties credential verification to the item operations through
// HTTP middleware and handlers.
package transport

import (
	"github.com/achievelist/achievelist/internal/transport/transportcore"
)

// Re-export types from transportcore so external packages can import
// transport without creating cycles.

// Middleware is a function that wraps an http.Handler.
// It can modify the request, response, or perform additional logic
// before or after calling the next handler in the chain.
type Middleware = transportcore.Middleware

// Server manages the HTTP server lifecycle.
// Implementations must support graceful shutdown and provide
// access to the bound address after startup.
type Server = transportcore.Server

// Router handles HTTP request routing and middleware composition.
// It extends http.Handler with pattern-based routing and middleware support.
type Router = transportcore.Router

// AuthMiddleware provides bearer credential verification middleware.
// It verifies the Authorization header and attaches the resulting
// identity to the request context.
type AuthMiddleware = transportcore.AuthMiddleware

// ErrorResponder handles boundary error responses.
// It formats HTTP error bodies as JSON and keeps credential failure
// details out of the response.
type ErrorResponder = transportcore.ErrorResponder
