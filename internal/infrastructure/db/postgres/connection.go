package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/KretovDmitry/bank-account/internal/config"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/jackc/pgx/v5/stdlib"
	sqldblogger "github.com/simukti/sqldb-logger"
)

// Connect opens a pool over the pgx driver that logs every query.
// It does not dial the server.
func Connect(cfg *config.Config, logger logger.Logger) (*sql.DB, error) {
	if cfg.DSN == "" {
		return nil, errors.New("failed to open the database: empty DSN")
	}

	return sqldblogger.OpenDriver(cfg.DSN, stdlib.GetDefaultDriver(), logger), nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		number      BIGINT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL,
		national_id TEXT NOT NULL,
		balance     NUMERIC NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS account_operations (
		id             BIGSERIAL PRIMARY KEY,
		account_number BIGINT NOT NULL REFERENCES accounts (number),
		operation      TEXT NOT NULL,
		status         TEXT NOT NULL,
		sum            NUMERIC NOT NULL,
		balance        NUMERIC NOT NULL,
		processed_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS account_operations_account_number_idx
		ON account_operations (account_number, processed_at DESC);
`

// Migrate creates missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
