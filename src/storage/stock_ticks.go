package storage

import (
	"time"

	"stocks-api/src/models"

	"github.com/google/uuid"
)

// Column order shared by INSERT and SELECT statements of both backends.
const stockTickColumns = `id, issuer_code, date, last_transaction_price, max_price, min_price, average_price,
	percent_change, quantity, trading_volume_dinars, total_volume_dinars, created_at, updated_at`

const stockTicksTable = "stock_ticks"

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// -----------------------------------------------------------------------------

// prepareStockTick validates the input and assigns identity and timestamps.
// Times are truncated to the millisecond precision they are stored with.
func prepareStockTick(in models.NewStockTick) (models.StockTick, error) {
	if err := in.Validate(); err != nil {
		return models.StockTick{}, err
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	tick := in.StockTick(uuid.New().String(), now)
	tick.Date = tick.Date.Truncate(time.Millisecond)
	return tick, nil
}

// -----------------------------------------------------------------------------

func stockTickArgs(t models.StockTick) []interface{} {
	return []interface{}{
		t.ID,
		t.IssuerCode,
		t.Date.UnixMilli(),
		t.LastTransactionPrice,
		t.MaxPrice,
		t.MinPrice,
		t.AveragePrice,
		t.PercentChange,
		t.Quantity,
		t.TradingVolumeDinars,
		t.TotalVolumeDinars,
		t.CreatedAt.UnixMilli(),
		t.UpdatedAt.UnixMilli(),
	}
}

// -----------------------------------------------------------------------------

func scanStockTick(row rowScanner) (models.StockTick, error) {
	var t models.StockTick
	var date, createdAt, updatedAt int64

	err := row.Scan(
		&t.ID,
		&t.IssuerCode,
		&date,
		&t.LastTransactionPrice,
		&t.MaxPrice,
		&t.MinPrice,
		&t.AveragePrice,
		&t.PercentChange,
		&t.Quantity,
		&t.TradingVolumeDinars,
		&t.TotalVolumeDinars,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return models.StockTick{}, err
	}

	t.Date = time.UnixMilli(date).UTC()
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	t.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return t, nil
}
