package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocks-api/src/config"
	"stocks-api/src/logger"
)

const shutdownTimeout = 10 * time.Second

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	// Load config (YAML, .env, environment)
	conf, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	if err := logger.Init(conf.MConfig); err != nil {
		fmt.Printf("Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	appLogger := logger.NewLogger(conf.Name)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The listener only starts once the store is reachable
	db, err := setupDatabase(ctx, conf.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Database unavailable, not starting server: %v", err)
	}
	defer db.Close()

	srv := setupServer(conf.MConfig, db)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			appLogger.Error("Graceful shutdown failed: %v", err)
		}
	}

	appLogger.Info("Shutdown complete.")
}
