// Package store provides the record store for ingested weather warnings.
//
// # Record Kinds
//
// Two soft-deletable record kinds participate in retention:
//
//   - CityReport: per-city warning summaries
//   - WarningXML: ingested VPWW54 warning documents
//
// Both carry an is_delete flag set by the ingestion pipeline and an
// updated_at timestamp. The store never interprets the flag; retention reads
// it to decide which rows are eligible for physical deletion.
//
// # Backends
//
// The package defines the RecordStore interface and provides two
// implementations:
//
//   - SQLite: durable storage for deployments (WAL mode, busy timeout,
//     idempotent schema creation)
//   - Memory: in-memory storage for testing, with staged transactional
//     deletes and injectable commit failures
//
// The SQLite driver is selected at build time: the default build uses the
// cgo driver (github.com/mattn/go-sqlite3); building with the purego tag
// swaps in modernc.org/sqlite.
//
// # Transactions
//
// All mutation happens inside an explicit transaction obtained from Begin.
// A retention sweep queries and deletes within one transaction and commits
// it as a whole, so a failure before Commit leaves every row in place.
package store
