package interfaces

import (
	"context"

	"stocks-api/src/models"
)

// -----------------------------------------------------------------------------
// IStockTickLister is the read side of the record store.
// -----------------------------------------------------------------------------

type IStockTickLister interface {
	// ListStockTicks returns every stored tick in insertion order.
	// An empty store yields an empty, non-nil slice.
	ListStockTicks(ctx context.Context) ([]models.StockTick, error)
}

// -----------------------------------------------------------------------------
// IDatabase defines the contract for storage operations.
// -----------------------------------------------------------------------------

type IDatabase interface {
	IStockTickLister

	// -----------------------------------------------------------------------------

	// Initialize connects, pings and creates the schema if it does not exist.
	Initialize(ctx context.Context) error

	// -----------------------------------------------------------------------------

	// InsertStockTick validates and persists one tick, assigning its
	// identifier and timestamps.
	InsertStockTick(ctx context.Context, tick models.NewStockTick) (models.StockTick, error)

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
