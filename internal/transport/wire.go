package transport

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/achievelist/achievelist/internal/config"
	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/internal/transport/internal/handlers"
	transporthttp "github.com/achievelist/achievelist/internal/transport/internal/http"
	"github.com/achievelist/achievelist/internal/transport/internal/middleware"
)

// ItemService is the transport layer's view of the item operations.
type ItemService = handlers.ItemService

// NewServer creates a configured HTTP server.
// The server is configured with timeouts from the config and uses the provided router.
func NewServer(cfg *config.Config, router Router) Server {
	return transporthttp.NewServer(cfg, router)
}

// NewRouter creates a new HTTP router backed by http.ServeMux.
func NewRouter() Router {
	return transporthttp.NewRouter()
}

// NewAuthMiddleware creates credential verification middleware.
// Requests that pass verification carry the caller identity in their context.
func NewAuthMiddleware(verifier identity.Verifier, responder ErrorResponder) AuthMiddleware {
	return middleware.NewAuthMiddleware(verifier, responder)
}

// NewErrorResponder creates the boundary error responder.
func NewErrorResponder() ErrorResponder {
	return transporthttp.NewErrorResponder()
}

// NewItemsHandler creates the item CRUD handler for the /items route.
func NewItemsHandler(service ItemService, responder ErrorResponder) http.Handler {
	return handlers.NewItemsHandler(service, responder)
}

// NewHealthHandler creates the health check handler.
// It provides a simple health status endpoint.
func NewHealthHandler() http.Handler {
	return handlers.NewHealthHandler()
}

// NewLoggingMiddleware creates request logging middleware.
// It logs HTTP request details using structured logging.
// If logger is nil, it uses the default slog logger.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return middleware.NewLoggingMiddleware(logger)
}

// NewRecoveryMiddleware creates panic recovery middleware.
// It recovers from panics and returns a 500 error to the client.
// If logger is nil, it uses the default slog logger.
func NewRecoveryMiddleware(responder ErrorResponder, logger *slog.Logger) Middleware {
	return middleware.NewRecoveryMiddleware(responder, logger)
}

// Config holds the configuration needed for the transport layer.
type Config struct {
	// ServerConfig is the server configuration.
	ServerConfig *config.Config

	// Verifier verifies bearer credentials.
	Verifier identity.Verifier

	// ItemService performs the item operations.
	ItemService ItemService
}

// NewTransportServices creates all transport layer services from the configuration.
// This is a convenience function for dependency injection that wires up the complete
// HTTP transport layer with routing, middleware, and handlers.
func NewTransportServices(cfg *Config) (Server, Router, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.ServerConfig == nil {
		return nil, nil, fmt.Errorf("server config cannot be nil")
	}
	if cfg.Verifier == nil {
		return nil, nil, fmt.Errorf("verifier cannot be nil")
	}
	if cfg.ItemService == nil {
		return nil, nil, fmt.Errorf("item service cannot be nil")
	}

	responder := NewErrorResponder()

	recoveryMiddleware := NewRecoveryMiddleware(responder, nil)
	loggingMiddleware := NewLoggingMiddleware(nil)
	authMiddleware := NewAuthMiddleware(cfg.Verifier, responder)

	itemsHandler := NewItemsHandler(cfg.ItemService, responder)
	healthHandler := NewHealthHandler()

	router := NewRouter()

	// Apply global middleware
	router.Use(recoveryMiddleware, loggingMiddleware)

	// Public endpoints (no auth required)
	router.Handle("GET /health", healthHandler)

	// Protected endpoints (auth required)
	// The items handler routes by verb itself so it can answer unsupported
	// methods with 405 instead of the mux's default 404.
	authenticatedItems := authMiddleware.Authenticate()(itemsHandler)
	router.Handle("/items", authenticatedItems)

	server := NewServer(cfg.ServerConfig, router)

	return server, router, nil
}
