package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketfin-ledger/internal/api"
	"github.com/pocketfin-ledger/internal/config"
	"github.com/pocketfin-ledger/internal/events"
	"github.com/pocketfin-ledger/internal/ledger"
	"github.com/pocketfin-ledger/internal/logger"
	"github.com/pocketfin-ledger/internal/store"
	"github.com/shopspring/decimal"
)

func main() {
	// Amounts are serialized as plain JSON numbers, matching the persisted
	// document layout.
	decimal.MarshalJSONWithoutQuotes = true

	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize the persistent store backend
	st, err := newStore(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}

	// Initialize the mutation event publisher
	publisher, err := newPublisher(appCtx, log, cfg)
	if err != nil {
		log.Error("Failed to initialize event publisher", "error", err)
		os.Exit(1)
	}

	// Initialize the ledger engine
	engine := ledger.NewEngine(log, st, publisher, cfg.Ledger.Strict)

	// Initialize REST server
	server := api.NewServer(log, cfg, engine)
	log.Info("REST server initialized",
		"store_backend", cfg.Store.Backend,
		"strict", cfg.Ledger.Strict,
	)

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	if err = publisher.Close(); err != nil {
		log.Error("Error closing event publisher", "error", err)
	}

	if err = st.Close(shutdownCtx); err != nil {
		log.Error("Error closing store", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}

// newStore builds the persistent store selected by STORE_BACKEND
func newStore(ctx context.Context, log *slog.Logger, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendMemory:
		return store.NewMemoryStore(), nil
	case config.StoreBackendPostgres:
		return store.NewPostgresStore(ctx, log, &cfg.Postgres)
	case config.StoreBackendMongo:
		return store.NewMongoStore(ctx, log, &cfg.MongoDB)
	case config.StoreBackendRedis:
		return store.NewRedisStore(ctx, log, &cfg.Redis, cfg.Store.Namespace)
	}
	return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
}

// newPublisher builds the mutation event publisher. Without Kafka enabled the
// engine publishes into a no-op sink.
func newPublisher(ctx context.Context, log *slog.Logger, cfg *config.Config) (events.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return events.NoopPublisher{}, nil
	}

	producer, err := events.NewMutationProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, err
	}

	return events.NewAsyncPublisher(producer, cfg.WorkerPool.Size, log)
}
