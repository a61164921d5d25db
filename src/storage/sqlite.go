package storage

import (
	"context"
	"database/sql"
	"fmt"

	"stocks-api/src/helpers"
	"stocks-api/src/logger"
	"stocks-api/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type AsyncSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewAsyncSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*AsyncSQLiteDB, error) {
	if cfg.Storage.DBPath == "" {
		return nil, helpers.NewConfigurationError("sqlite database path is empty", nil)
	}
	return &AsyncSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError("failed to open sqlite database", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewDatabaseError("failed to reach sqlite database", err)
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	if err := d.ensureTables(ctx); err != nil {
		db.Close()
		d.DB = nil
		return err
	}

	d.Logger.Info("SQLiteDB initialized successfully (Path: %s)", dsn)
	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) ensureTables(ctx context.Context) error {
	// Decimals are kept as TEXT so stored values stay exact
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			issuer_code TEXT NOT NULL,
			date INTEGER NOT NULL,
			last_transaction_price TEXT NOT NULL,
			max_price TEXT NOT NULL,
			min_price TEXT NOT NULL,
			average_price TEXT NOT NULL,
			percent_change TEXT NOT NULL,
			quantity TEXT NOT NULL,
			trading_volume_dinars TEXT NOT NULL,
			total_volume_dinars TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);
	`, stockTicksTable)
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError(fmt.Sprintf("failed to create %s", stockTicksTable), err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_issuer_code ON %s (issuer_code)`, stockTicksTable, stockTicksTable)
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError("failed to create issuer_code index", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) InsertStockTick(ctx context.Context, in models.NewStockTick) (models.StockTick, error) {
	tick, err := prepareStockTick(in)
	if err != nil {
		return models.StockTick{}, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, stockTicksTable, stockTickColumns)
	if _, err := d.DB.ExecContext(ctx, query, stockTickArgs(tick)...); err != nil {
		return models.StockTick{}, helpers.NewDatabaseError("failed to insert stock tick", err)
	}

	return tick, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) ListStockTicks(ctx context.Context) ([]models.StockTick, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY seq`, stockTickColumns, stockTicksTable)

	rows, err := d.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, helpers.NewDatabaseError("failed to list stock ticks", err)
	}
	defer rows.Close()

	ticks := make([]models.StockTick, 0)
	for rows.Next() {
		t, err := scanStockTick(rows)
		if err != nil {
			return nil, helpers.NewDatabaseError("failed to read stock tick", err)
		}
		ticks = append(ticks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, helpers.NewDatabaseError("failed to list stock ticks", err)
	}

	return ticks, nil
}

// -----------------------------------------------------------------------------

func (d *AsyncSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
