package main

import (
	"context"

	"stocks-api/src/interfaces"
	"stocks-api/src/logger"
	"stocks-api/src/models"
	"stocks-api/src/server"
	"stocks-api/src/storage"
)

// -----------------------------------------------------------------------------

// setupDatabase creates the configured store and connects it
func setupDatabase(ctx context.Context, config *models.MConfig, appLogger *logger.Logger) (interfaces.IDatabase, error) {
	var db interfaces.IDatabase
	var err error

	switch config.Storage.DBType {
	case "sqlite":
		db, err = storage.NewAsyncSQLiteDB(config, logger.NewLogger("SQLiteDB"))
	default:
		db, err = storage.NewPostgresDB(config, logger.NewLogger("PostgresDB"))
	}
	if err != nil {
		return nil, err
	}

	appLogger.Info("Connecting to %s store...", config.Storage.DBType)
	if err := db.Initialize(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// -----------------------------------------------------------------------------

// setupServer wires the store into the HTTP API
func setupServer(config *models.MConfig, store interfaces.IStockTickLister) *server.APIServer {
	return server.NewAPIServer(config, logger.NewLogger("APIServer"), store)
}
