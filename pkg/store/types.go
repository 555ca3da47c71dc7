package store

import (
	"context"
	"time"
)

// CityReport is one per-city warning summary row produced by the ingestion
// pipeline. Column names are inherited from the ingestion schema.
type CityReport struct {
	ID        int64     `json:"id"`
	LMO       string    `json:"lmo"`       // issuing local meteorological office
	XMLFile   string    `json:"xmlfile"`   // source artifact filename
	City      string    `json:"city"`      // city name
	KindName  string    `json:"kind_name"` // warning category label
	Status    string    `json:"status"`    // issue/continue/cancel state
	Deleted   bool      `json:"is_delete"` // soft-delete flag, set by ingestion
	UpdatedAt time.Time `json:"updated_at"`
}

// WarningXML is one ingested VPWW54 warning document row.
type WarningXML struct {
	ID        int64     `json:"id"`
	LMO       string    `json:"lmo"`
	XMLFile   string    `json:"xmlfile"`
	Deleted   bool      `json:"is_delete"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordStore is the persistence boundary for warning records. Retention
// works exclusively through explicit transactions obtained from Begin, so
// each sweep commits fully or leaves the store untouched.
type RecordStore interface {
	// Migrate creates the schema if it is absent. Safe to call repeatedly.
	Migrate(ctx context.Context) error

	// Begin opens a transaction. The caller must Commit or Rollback it
	// before starting the next one.
	Begin(ctx context.Context) (Tx, error)

	Close() error
}

// Tx is a single transaction against the record store. Reads see the
// transaction's own staged deletes.
type Tx interface {
	// ExpiredCityReports returns city report rows that are soft-deleted and
	// whose updated_at is strictly before cutoff. Rows with an unset
	// soft-delete flag are never returned.
	ExpiredCityReports(ctx context.Context, cutoff time.Time) ([]CityReport, error)

	// DeleteCityReports stages deletion of the given rows and reports how
	// many were affected. Nothing is durable until Commit.
	DeleteCityReports(ctx context.Context, ids []int64) (int64, error)

	// ExpiredWarningXML is the VPWW54 counterpart of ExpiredCityReports.
	ExpiredWarningXML(ctx context.Context, cutoff time.Time) ([]WarningXML, error)

	// DeleteWarningXML is the VPWW54 counterpart of DeleteCityReports.
	DeleteWarningXML(ctx context.Context, ids []int64) (int64, error)

	Commit() error
	Rollback() error
}
