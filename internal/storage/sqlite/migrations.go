package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// schemaVersion is stored in PRAGMA user_version. Bump it on any
// incompatible schema change; existing data is then dropped, not migrated.
const schemaVersion = 2

// schema contains the SQL statements to set up the database schema.
// Amounts are stored as decimal text so they round-trip exactly.
const schema = `
CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer TEXT NOT NULL,
    file_name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    quantity INTEGER NOT NULL DEFAULT 1,
    amount TEXT NOT NULL,
    double_sided INTEGER NOT NULL DEFAULT 1,
    spiral INTEGER NOT NULL DEFAULT 0,
    due_date TEXT NOT NULL,
    added_time TEXT NOT NULL,
    amount_received INTEGER NOT NULL DEFAULT 0,
    completed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS pin_config (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    hash TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_due_date ON orders(due_date);
`

const dropSchema = `
DROP INDEX IF EXISTS idx_orders_due_date;
DROP TABLE IF EXISTS orders;
DROP TABLE IF EXISTS pin_config;
`

// runMigrations brings the database to schemaVersion. A database stamped
// with any other non-zero version is wiped first.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if current != 0 && current != schemaVersion {
		slog.Warn("Schema version changed, dropping existing data",
			"from", current,
			"to", schemaVersion,
		)
		if _, err := tx.ExecContext(ctx, dropSchema); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to stamp schema version: %w", err)
	}

	return tx.Commit()
}
