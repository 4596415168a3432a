// Package transport provides the HTTP transport layer for the achievement
// item server.
//
// # Architecture
//
// The transport package connects bearer credential verification with the item
// operations. It follows the adapter pattern to bridge the identity and items
// verticals with HTTP.
//
// Package structure:
//
//	internal/transport/
//	├── transport.go              # Public interfaces
//	├── context.go                # Context keys and helpers
//	├── wire.go                   # Factory functions
//	├── internal/
//	│   ├── http/
//	│   │   ├── server.go         # HTTP server with graceful shutdown
//	│   │   ├── router.go         # HTTP routing
//	│   │   └── response.go       # Error responder
//	│   ├── middleware/
//	│   │   ├── auth.go           # Authentication middleware
//	│   │   ├── logging.go        # Request logging
//	│   │   └── recovery.go       # Panic recovery
//	│   └── handlers/
//	│       ├── items.go          # Item CRUD endpoint
//	│       └── health.go         # Health check endpoint
//
// # Authentication
//
// Credentials are accepted from the Authorization header only, using the
// Bearer scheme. A request with a missing, malformed, or unverifiable
// credential receives a 401 with a WWW-Authenticate header and a generic
// body; the concrete failure is logged server-side but never sent to the
// client.
//
// # Middleware Chain
//
// The middleware chain is applied in this order:
//
//  1. Recovery - catches panics and returns 500 errors
//  2. Logging - logs request details with a request id
//  3. Authentication - verifies the bearer credential (protected routes only)
//
// # Endpoints
//
// Public endpoints (no authentication):
//   - GET /health - Health check
//
// Protected endpoints (authentication required):
//   - GET /items - list the caller's items, newest first
//   - POST /items - create an item
//   - PATCH /items?id=<id> - update an item by id
//   - DELETE /items?id=<id> - delete an item by id
//
// Any other method on /items receives a 405 with an Allow header.
//
// # Context Values
//
// The authentication middleware stores the verified identity in the request
// context:
//
//	ident, ok := transport.IdentityFromContext(r.Context())
//	if !ok {
//		// Not authenticated
//	}
//	owner := ident.Subject
package transport
