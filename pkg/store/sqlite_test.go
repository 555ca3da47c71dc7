package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	cfg := DefaultSQLiteConfig()
	cfg.Path = filepath.Join(t.TempDir(), "weather.sqlite3")

	s, err := NewSQLiteStore(cfg)
	if err != nil {
		t.Fatalf("NewSQLiteStore() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return s
}

func insertCityReport(t *testing.T, s *SQLiteStore, r CityReport) {
	t.Helper()
	_, err := s.DB().Exec(`
		INSERT INTO city_report (id, lmo, xmlfile, city, kind_name, status, is_delete, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.LMO, r.XMLFile, r.City, r.KindName, r.Status, r.Deleted, r.UpdatedAt)
	if err != nil {
		t.Fatalf("insert city report: %v", err)
	}
}

func insertWarningXML(t *testing.T, s *SQLiteStore, w WarningXML) {
	t.Helper()
	_, err := s.DB().Exec(`
		INSERT INTO vpww54_xml (id, lmo, xmlfile, is_delete, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.LMO, w.XMLFile, w.Deleted, w.UpdatedAt)
	if err != nil {
		t.Fatalf("insert warning xml: %v", err)
	}
}

func countRows(t *testing.T, s *SQLiteStore, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestSQLiteStore_MigrateIsIdempotent(t *testing.T) {
	s := newTestSQLiteStore(t)

	// A second migration against the same database must be a no-op.
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}

	var version int
	if err := s.DB().QueryRow(GetSchemaVersion).Scan(&version); err != nil {
		t.Fatalf("read schema version: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("schema version = %d, want %d", version, SchemaVersion)
	}
}

func TestSQLiteStore_ExpiredCityReports(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, -30)

	s := newTestSQLiteStore(t)
	insertCityReport(t, s, CityReport{ID: 1, LMO: "011000", XMLFile: "a.xml", City: "Sapporo", KindName: "大雨警報", Status: "発表", Deleted: true, UpdatedAt: now.AddDate(0, 0, -31)})
	insertCityReport(t, s, CityReport{ID: 2, LMO: "011000", XMLFile: "b.xml", City: "Otaru", KindName: "洪水警報", Status: "継続", Deleted: true, UpdatedAt: now.AddDate(0, 0, -10)})
	insertCityReport(t, s, CityReport{ID: 3, LMO: "011000", XMLFile: "c.xml", City: "Chitose", KindName: "大雪警報", Status: "解除", Deleted: false, UpdatedAt: now.AddDate(0, 0, -365)})

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	defer tx.Rollback()

	expired, err := tx.ExpiredCityReports(ctx, cutoff)
	if err != nil {
		t.Fatalf("ExpiredCityReports() failed: %v", err)
	}
	if len(expired) != 1 {
		t.Fatalf("expired rows = %d, want 1", len(expired))
	}
	if expired[0].ID != 1 || expired[0].City != "Sapporo" {
		t.Errorf("expired row = %+v, want ID 1 (Sapporo)", expired[0])
	}
}

func TestSQLiteStore_DeleteWithinTransaction(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := newTestSQLiteStore(t)
	insertWarningXML(t, s, WarningXML{ID: 1, LMO: "011000", XMLFile: "old.xml", Deleted: true, UpdatedAt: now.AddDate(0, 0, -40)})
	insertWarningXML(t, s, WarningXML{ID: 2, LMO: "011000", XMLFile: "new.xml", Deleted: true, UpdatedAt: now.AddDate(0, 0, -5)})

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	deleted, err := tx.DeleteWarningXML(ctx, []int64{1})
	if err != nil {
		t.Fatalf("DeleteWarningXML() failed: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}

	if got := countRows(t, s, "vpww54_xml"); got != 1 {
		t.Errorf("rows after commit = %d, want 1", got)
	}
}

func TestSQLiteStore_RollbackPreservesRows(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()

	s := newTestSQLiteStore(t)
	insertCityReport(t, s, CityReport{ID: 1, LMO: "011000", XMLFile: "a.xml", City: "Sapporo", KindName: "大雨警報", Status: "発表", Deleted: true, UpdatedAt: now.AddDate(0, 0, -40)})

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	if _, err := tx.DeleteCityReports(ctx, []int64{1}); err != nil {
		t.Fatalf("DeleteCityReports() failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}

	if got := countRows(t, s, "city_report"); got != 1 {
		t.Errorf("rows after rollback = %d, want 1", got)
	}
}

func TestSQLiteStore_DeleteEmptySet(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	defer tx.Rollback()

	deleted, err := tx.DeleteCityReports(ctx, nil)
	if err != nil {
		t.Fatalf("DeleteCityReports(nil) failed: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}
