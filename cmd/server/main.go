// Package main provides the entry point for the achievement item server.
// It wires together all components using dependency injection and manages
// the server lifecycle with graceful shutdown.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/achievelist/achievelist/internal/config"
	"github.com/achievelist/achievelist/internal/identity"
	"github.com/achievelist/achievelist/internal/items"
	"github.com/achievelist/achievelist/internal/store"
	"github.com/achievelist/achievelist/internal/transport"
)

func main() {
	// Set up structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.Info("server configuration loaded",
		"addr", cfg.Addr,
		"database", cfg.Database,
		"issuer", cfg.Issuer,
	)

	// Wire identity components
	identityCfg := &identity.Config{
		Issuer:       cfg.Issuer,
		Audience:     cfg.Audience,
		JWKSURL:      cfg.JWKSURL,
		KeysCacheTTL: cfg.KeysCacheTTL,
		ClockSkew:    cfg.ClockSkew,
	}

	verifier, keySource := identity.NewIdentityServices(identityCfg)
	_ = keySource // Available for manual key refresh

	slog.Info("identity services initialized",
		"keys_cache_ttl", cfg.KeysCacheTTL,
		"clock_skew", cfg.ClockSkew,
	)

	// Wire the document store. The connection is established lazily on the
	// first request and reused afterwards.
	lazy := store.NewLazy(cfg.MongoURI, cfg.Database, cfg.ConnectTimeout)

	// Wire item components
	itemService, repository := items.NewItemsServices(lazy, cfg.ItemsCollection)
	_ = repository // Reachable through the service

	slog.Info("item services initialized",
		"collection", cfg.ItemsCollection,
	)

	// Wire transport layer
	transportCfg := &transport.Config{
		ServerConfig: cfg,
		Verifier:     verifier,
		ItemService:  itemService,
	}

	server, router, err := transport.NewTransportServices(transportCfg)
	if err != nil {
		log.Fatalf("failed to create transport services: %v", err)
	}
	_ = router // Router is used internally by server

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server in background goroutine
	serverErrCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.Addr)
		if err := server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping server gracefully...")
	case err := <-serverErrCh:
		slog.Error("server error", "error", err)
		stop()
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	if err := lazy.Close(shutdownCtx); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("server stopped successfully")
}
