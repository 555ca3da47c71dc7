package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config is the root configuration structure for the maintenance daemon.
type Config struct {
	// Database locates the warning record store.
	Database DatabaseConfig `yaml:"database"`

	// Artifacts locates on-disk ingestion artifacts subject to retention.
	Artifacts ArtifactsConfig `yaml:"artifacts"`

	// Schedule controls when the recurring jobs run.
	Schedule ScheduleConfig `yaml:"schedule"`

	// Retention controls the data-retention policy.
	Retention RetentionConfig `yaml:"retention"`

	// Checker configures the external weather check.
	Checker CheckerConfig `yaml:"checker"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig locates the warning record database.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path"`
}

// ArtifactsConfig locates on-disk ingestion artifacts.
type ArtifactsConfig struct {
	// DeletedDir is the directory holding XML artifacts that ingestion has
	// moved aside for eventual deletion.
	DeletedDir string `yaml:"deleted_dir"`
}

// ScheduleConfig controls when the recurring jobs run.
type ScheduleConfig struct {
	// CheckInterval is the period between weather checks.
	CheckInterval time.Duration `yaml:"check_interval"`

	// CleanupAt is the local wall-clock time of the daily cleanup,
	// formatted "HH:MM".
	CleanupAt string `yaml:"cleanup_at"`
}

// RetentionConfig controls the retention policy.
type RetentionConfig struct {
	// Days is the minimum age in days a soft-deleted record or stale
	// artifact must reach before physical deletion is permitted.
	Days int `yaml:"days"`
}

// CheckerConfig configures the external weather check.
type CheckerConfig struct {
	// FeedURL is the endpoint the check job requests.
	FeedURL string `yaml:"feed_url"`
}

// TelemetryConfig configures logging and metrics.
type TelemetryConfig struct {
	// MetricsAddr is the listen address for the Prometheus endpoint.
	// Empty disables the endpoint.
	MetricsAddr string `yaml:"metrics_addr"`

	// LogLevel is the minimum log level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level"`
}

// CleanupTime parses CleanupAt into its hour and minute components.
func (s ScheduleConfig) CleanupTime() (hour, minute int, err error) {
	parts := strings.SplitN(s.CleanupAt, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid cleanup time %q: want HH:MM", s.CleanupAt)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cleanup hour %q: %w", parts[0], err)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid cleanup minute %q: %w", parts[1], err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("cleanup time %q out of range", s.CleanupAt)
	}
	return hour, minute, nil
}
