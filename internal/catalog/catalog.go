package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-catalog/internal/logging"
	"media-catalog/internal/metrics"
)

// Default timeout for catalog operations
const defaultTimeout = 5 * time.Second

// Sentinel errors forming the catalog's failure taxonomy. Callers classify
// with errors.Is; both are permanent (never retried).
var (
	// ErrNotFound means the requested library or asset does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest means the operation is not valid for the target,
	// such as setting import paths on an UPLOAD library.
	ErrInvalidRequest = errors.New("invalid request")
)

// Catalog provides persistence for library and asset records.
type Catalog struct {
	db     *sql.DB
	dbPath string
}

// Open connects to the catalog database at dbPath, creating it and its
// schema if needed. dbPath must be the full path to the database file and
// its parent directory must already exist and be writable.
func Open(ctx context.Context, dbPath string) (*Catalog, error) {
	logging.Info("Catalog database path: %s", dbPath)

	// WAL mode for concurrent worker reads; busy_timeout guards against
	// "database is locked" under concurrent job upserts.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=on&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close catalog database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to catalog database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	c := &Catalog{
		db:     db,
		dbPath: dbPath,
	}

	if err := c.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close catalog database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}

	logging.Info("Catalog database initialized at %s", dbPath)
	return c, nil
}

func (c *Catalog) initialize(ctx context.Context) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("initialize_schema", start, err) }()

	schema := `
	CREATE TABLE IF NOT EXISTS libraries (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		type TEXT NOT NULL,
		import_paths TEXT NOT NULL DEFAULT '[]',
		is_visible INTEGER NOT NULL DEFAULT 1,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_libraries_owner ON libraries(owner_id);

	CREATE TABLE IF NOT EXISTS assets (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		library_id TEXT NOT NULL,
		device_asset_id TEXT NOT NULL,
		original_path TEXT NOT NULL,
		checksum BLOB,
		type TEXT NOT NULL,
		file_created_at INTEGER NOT NULL,
		file_modified_at INTEGER NOT NULL,
		is_offline INTEGER NOT NULL DEFAULT 0,
		sidecar_path TEXT NOT NULL DEFAULT '',
		is_read_only INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		FOREIGN KEY (library_id) REFERENCES libraries(id) ON DELETE CASCADE,
		UNIQUE(library_id, original_path)
	);

	CREATE INDEX IF NOT EXISTS idx_assets_library ON assets(library_id);
	CREATE INDEX IF NOT EXISTS idx_assets_offline ON assets(library_id, is_offline);
	CREATE INDEX IF NOT EXISTS idx_assets_checksum ON assets(checksum);
	`

	_, err = c.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// UpdateDBMetrics exports database connection pool stats.
func (c *Catalog) UpdateDBMetrics() {
	stats := c.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}

// recordQuery records catalog query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}
