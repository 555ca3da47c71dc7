package config

import "time"

// Default values for configuration fields.
const (
	// Database defaults. The Docker deployment mounts /data and overrides
	// the path with DB_PATH.
	DefaultDBPath = "data/weather.sqlite3"

	// Artifact defaults
	DefaultDeletedDir = "data/deleted"

	// Schedule defaults
	DefaultCheckInterval = 10 * time.Minute
	DefaultCleanupAt     = "01:00"

	// Retention defaults
	DefaultRetentionDays = 30

	// Checker defaults
	DefaultFeedURL = "https://www.data.jma.go.jp/developer/xml/feed/extra.xml"

	// Telemetry defaults
	DefaultLogLevel = "info"
)

// ApplyDefaults fills in default values for any unset configuration fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDBPath
	}
	if cfg.Artifacts.DeletedDir == "" {
		cfg.Artifacts.DeletedDir = DefaultDeletedDir
	}
	if cfg.Schedule.CheckInterval == 0 {
		cfg.Schedule.CheckInterval = DefaultCheckInterval
	}
	if cfg.Schedule.CleanupAt == "" {
		cfg.Schedule.CleanupAt = DefaultCleanupAt
	}
	if cfg.Retention.Days == 0 {
		cfg.Retention.Days = DefaultRetentionDays
	}
	if cfg.Checker.FeedURL == "" {
		cfg.Checker.FeedURL = DefaultFeedURL
	}
	if cfg.Telemetry.LogLevel == "" {
		cfg.Telemetry.LogLevel = DefaultLogLevel
	}
}
