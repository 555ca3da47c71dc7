// Package config provides configuration management for the maintenance
// daemon.
//
// This package handles loading, validating, and managing configuration from
// an optional YAML file with environment variable overrides. The daemon runs
// fine with no file at all: every field has a sensible default.
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention CUSTODIAN_SECTION_FIELD
// and always win over file values. For example:
//
//   - CUSTODIAN_DATABASE_PATH overrides database.path
//   - CUSTODIAN_RETENTION_DAYS overrides retention.days
//   - CUSTODIAN_SCHEDULE_CLEANUP_AT overrides schedule.cleanup_at
//
// The legacy deployment variables DB_PATH and DELETED_DIR are also honored,
// matching the ingestion service's container environment.
//
// # Hot Reload
//
// Watcher watches the configuration file and delivers reloaded
// configurations to a callback. The daemon uses this to pick up retention
// policy changes without a restart; reloads that fail validation are logged
// and ignored.
package config
