// Package sqlite provides SQLite implementations of the repository interfaces.
// The store is embedded and cgo-free (modernc.org/sqlite); WAL journaling and
// a busy timeout keep concurrent writers from failing fast, and transactions
// are opened immediate so write locks are taken up front.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open creates or opens the application database at the given path and
// ensures the schema exists.
//
// Parameters:
//   - path: filesystem path of the database file
//
// Returns:
//   - *sql.DB: the open database handle
//   - error: any error creating the directory, opening, or migrating
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_txlock=immediate&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return db, nil
}

// initSchema creates the database schema.
//
// The boxes table carries the sorted dimension triple and precomputed
// volume alongside the raw measurements so the catalog can filter
// rotation-invariantly and keyset-paginate on (volume, id) with an index.
func initSchema(db *sql.DB) error {
	schema := `
	-- Shipping box catalog
	CREATE TABLE IF NOT EXISTS boxes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		width REAL NOT NULL CHECK (width > 0),
		height REAL NOT NULL CHECK (height > 0),
		length REAL NOT NULL CHECK (length > 0),
		max_weight REAL NOT NULL CHECK (max_weight > 0),
		dim_small REAL NOT NULL,
		dim_mid REAL NOT NULL,
		dim_large REAL NOT NULL,
		volume REAL NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_boxes_volume_id ON boxes(volume, id);
	CREATE INDEX IF NOT EXISTS idx_boxes_dims ON boxes(dim_small, dim_mid, dim_large);

	-- Content-addressed packing decisions (oracle-confirmed only)
	CREATE TABLE IF NOT EXISTS packing_cache (
		product_hash TEXT PRIMARY KEY,
		box_id INTEGER NOT NULL REFERENCES boxes(id),
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := db.Exec(schema)
	return err
}
