package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// SQLiteConfig contains configuration for the SQLite store backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns is the maximum number of open connections to the database.
	// Default: 10
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int

	// WALMode enables Write-Ahead Logging mode for better concurrency.
	// Default: true
	WALMode bool

	// BusyTimeout is the duration to wait when the database is locked.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() *SQLiteConfig {
	return &SQLiteConfig{
		Path:         "data/weather.sqlite3",
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}
}

// SQLiteStore implements the RecordStore interface using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	config *SQLiteConfig
	logger *slog.Logger
}

// NewSQLiteStore opens a SQLite record store. It configures the connection
// pool and applies the WAL and busy-timeout pragmas, but does not create the
// schema; call Migrate for that.
func NewSQLiteStore(config *SQLiteConfig) (*SQLiteStore, error) {
	if config == nil {
		config = DefaultSQLiteConfig()
	}

	logger := slog.Default().With("component", "store.sqlite")

	db, err := sql.Open(driverName, config.Path)
	if err != nil {
		return nil, NewStorageError("sqlite", "open", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)

	s := &SQLiteStore{
		db:     db,
		config: config,
		logger: logger,
	}

	if config.WALMode {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, NewStorageError("sqlite", "enable_wal", err)
		}
	}

	busyTimeoutMs := config.BusyTimeout.Milliseconds()
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, NewStorageError("sqlite", "set_busy_timeout", err)
	}

	logger.Info("SQLite store opened",
		"path", config.Path,
		"wal_mode", config.WALMode,
		"max_open_conns", config.MaxOpenConns,
	)

	return s, nil
}

// Migrate creates the database schema if it is absent and verifies the
// recorded schema version. Calling it on an already-migrated database is a
// no-op.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return NewStorageError("sqlite", "create_schema", err)
	}

	if _, err := s.db.ExecContext(ctx, InsertSchemaVersion, SchemaVersion); err != nil {
		return NewStorageError("sqlite", "insert_schema_version", err)
	}

	var version int
	err := s.db.QueryRowContext(ctx, GetSchemaVersion).Scan(&version)
	if err != nil && err != sql.ErrNoRows {
		return NewStorageError("sqlite", "get_schema_version", err)
	}

	if version != SchemaVersion {
		return NewStorageError("sqlite", "schema_version_mismatch",
			fmt.Errorf("expected schema version %d, got %d", SchemaVersion, version))
	}

	s.logger.Debug("database schema ready", "version", version)

	return nil
}

// Begin opens a transaction.
func (s *SQLiteStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, NewStorageError("sqlite", "begin", err)
	}
	return &sqliteTx{tx: tx}, nil
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return NewStorageError("sqlite", "close", err)
	}
	s.logger.Info("SQLite store closed")
	return nil
}

// DB exposes the underlying database handle. Intended for tests and
// one-off tooling, not for the retention path.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// sqliteTx implements Tx on top of a database/sql transaction.
type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) ExpiredCityReports(ctx context.Context, cutoff time.Time) ([]CityReport, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, lmo, xmlfile, city, kind_name, status, is_delete, updated_at
		FROM city_report
		WHERE is_delete = 1 AND updated_at < ?
		ORDER BY id`, cutoff)
	if err != nil {
		return nil, NewStorageError("sqlite", "query_city_reports", err)
	}
	defer rows.Close()

	var reports []CityReport
	for rows.Next() {
		var r CityReport
		if err := rows.Scan(&r.ID, &r.LMO, &r.XMLFile, &r.City, &r.KindName, &r.Status, &r.Deleted, &r.UpdatedAt); err != nil {
			return nil, NewStorageError("sqlite", "scan_city_report", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query_city_reports", err)
	}

	return reports, nil
}

func (t *sqliteTx) DeleteCityReports(ctx context.Context, ids []int64) (int64, error) {
	return t.deleteByID(ctx, "city_report", ids)
}

func (t *sqliteTx) ExpiredWarningXML(ctx context.Context, cutoff time.Time) ([]WarningXML, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT id, lmo, xmlfile, is_delete, updated_at
		FROM vpww54_xml
		WHERE is_delete = 1 AND updated_at < ?
		ORDER BY id`, cutoff)
	if err != nil {
		return nil, NewStorageError("sqlite", "query_warning_xml", err)
	}
	defer rows.Close()

	var docs []WarningXML
	for rows.Next() {
		var w WarningXML
		if err := rows.Scan(&w.ID, &w.LMO, &w.XMLFile, &w.Deleted, &w.UpdatedAt); err != nil {
			return nil, NewStorageError("sqlite", "scan_warning_xml", err)
		}
		docs = append(docs, w)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStorageError("sqlite", "query_warning_xml", err)
	}

	return docs, nil
}

func (t *sqliteTx) DeleteWarningXML(ctx context.Context, ids []int64) (int64, error) {
	return t.deleteByID(ctx, "vpww54_xml", ids)
}

func (t *sqliteTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return NewStorageError("sqlite", "commit", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return NewStorageError("sqlite", "rollback", err)
	}
	return nil
}

// deleteByID deletes rows from table by primary key within the transaction.
func (t *sqliteTx) deleteByID(ctx context.Context, table string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id IN (%s)", table, placeholders)
	result, err := t.tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, NewStorageError("sqlite", "delete", err)
	}

	return count, nil
}
