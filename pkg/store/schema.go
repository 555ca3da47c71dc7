package store

// SchemaVersion is the current database schema version.
const SchemaVersion = 1

// Schema contains the SQL statements to create the warning database schema.
// Both tables carry the soft-delete flag and last-update timestamp the
// retention sweeps filter on; the paired index serves the sweep query.
const Schema = `
-- Per-city warning summaries
CREATE TABLE IF NOT EXISTS city_report (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    lmo TEXT NOT NULL,
    xmlfile TEXT NOT NULL,
    city TEXT NOT NULL,
    kind_name TEXT NOT NULL,
    status TEXT NOT NULL,
    is_delete BOOLEAN NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_city_report_retention
    ON city_report (is_delete, updated_at);

-- Ingested VPWW54 warning documents
CREATE TABLE IF NOT EXISTS vpww54_xml (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    lmo TEXT NOT NULL,
    xmlfile TEXT NOT NULL,
    is_delete BOOLEAN NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vpww54_xml_retention
    ON vpww54_xml (is_delete, updated_at);

-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// InsertSchemaVersion records the schema version (idempotent).
const InsertSchemaVersion = `
INSERT OR IGNORE INTO schema_version (version) VALUES (?)
`

// GetSchemaVersion retrieves the latest schema version.
const GetSchemaVersion = `
SELECT version FROM schema_version ORDER BY version DESC LIMIT 1
`
