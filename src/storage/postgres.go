package storage

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"stocks-api/src/helpers"
	"stocks-api/src/logger"
	"stocks-api/src/models"

	_ "github.com/lib/pq"
)

const defaultPostgresSchema = "public"

var schemaNameRegex = regexp.MustCompile(`^\w+$`)

// -----------------------------------------------------------------------------

type PostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresDB(cfg *models.MConfig, log *logger.Logger) (*PostgresDB, error) {
	schema := cfg.Storage.Schema
	if schema == "" {
		schema = defaultPostgresSchema
	}
	// Identifiers cannot be bound as parameters, so only plain names are accepted
	if !schemaNameRegex.MatchString(schema) {
		return nil, helpers.NewConfigurationError(fmt.Sprintf("invalid postgres schema name %q", schema), nil)
	}

	return &PostgresDB{
		Config: cfg,
		Schema: schema,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) Initialize(ctx context.Context) error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewDatabaseError("failed to open postgres connection", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return helpers.NewDatabaseError("failed to reach postgres", err)
	}

	d.DB = db

	if _, err := d.DB.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		d.release()
		return helpers.NewDatabaseError(fmt.Sprintf("failed to create schema %s", d.Schema), err)
	}

	if err := d.ensureTables(ctx); err != nil {
		d.release()
		return err
	}

	d.Logger.Info("PostgresDB initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

// release drops a half-initialized pool so a failed Initialize leaves no
// open connections behind.
func (d *PostgresDB) release() {
	if d.DB != nil {
		d.DB.Close()
		d.DB = nil
	}
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) table() string {
	return fmt.Sprintf(`"%s"."%s"`, d.Schema, stockTicksTable)
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ensureTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			seq BIGSERIAL PRIMARY KEY,
			id UUID NOT NULL UNIQUE,
			issuer_code TEXT NOT NULL,
			date BIGINT NOT NULL,
			last_transaction_price NUMERIC NOT NULL,
			max_price NUMERIC NOT NULL,
			min_price NUMERIC NOT NULL,
			average_price NUMERIC NOT NULL,
			percent_change TEXT NOT NULL,
			quantity NUMERIC NOT NULL,
			trading_volume_dinars NUMERIC NOT NULL,
			total_volume_dinars NUMERIC NOT NULL,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		);
	`, d.table())
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError(fmt.Sprintf("failed to create %s", d.table()), err)
	}

	query = fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_issuer_code ON %s (issuer_code)`, stockTicksTable, d.table())
	if _, err := d.DB.ExecContext(ctx, query); err != nil {
		return helpers.NewDatabaseError("failed to create issuer_code index", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) InsertStockTick(ctx context.Context, in models.NewStockTick) (models.StockTick, error) {
	tick, err := prepareStockTick(in)
	if err != nil {
		return models.StockTick{}, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, d.table(), stockTickColumns)
	if _, err := d.DB.ExecContext(ctx, query, stockTickArgs(tick)...); err != nil {
		return models.StockTick{}, helpers.NewDatabaseError("failed to insert stock tick", err)
	}

	return tick, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresDB) ListStockTicks(ctx context.Context) ([]models.StockTick, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY seq`, stockTickColumns, d.table())

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

func (d *PostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
