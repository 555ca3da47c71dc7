package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads the daemon configuration.
//
// The loading sequence is:
//  1. Parse the YAML file at path, when one is given (a missing file is
//     an error; an empty path means run on defaults)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// Environment overrides use the CUSTODIAN_SECTION_FIELD convention
// (e.g. CUSTODIAN_RETENTION_DAYS). The legacy ingestion deployment
// variables DB_PATH and DELETED_DIR are honored as well.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables always take precedence over
// file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Legacy names from the original deployment come first so the
	// CUSTODIAN_* names can still override them.
	if val := os.Getenv("DB_PATH"); val != "" {
		cfg.Database.Path = val
	}
	if val := os.Getenv("DELETED_DIR"); val != "" {
		cfg.Artifacts.DeletedDir = val
	}

	if val := os.Getenv("CUSTODIAN_DATABASE_PATH"); val != "" {
		cfg.Database.Path = val
	}
	if val := os.Getenv("CUSTODIAN_ARTIFACTS_DELETED_DIR"); val != "" {
		cfg.Artifacts.DeletedDir = val
	}
	if val := os.Getenv("CUSTODIAN_SCHEDULE_CHECK_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Schedule.CheckInterval = d
		}
	}
	if val := os.Getenv("CUSTODIAN_SCHEDULE_CLEANUP_AT"); val != "" {
		cfg.Schedule.CleanupAt = val
	}
	if val := os.Getenv("CUSTODIAN_RETENTION_DAYS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			cfg.Retention.Days = n
		}
	}
	if val := os.Getenv("CUSTODIAN_CHECKER_FEED_URL"); val != "" {
		cfg.Checker.FeedURL = val
	}
	if val := os.Getenv("CUSTODIAN_TELEMETRY_METRICS_ADDR"); val != "" {
		cfg.Telemetry.MetricsAddr = val
	}
	if val := os.Getenv("CUSTODIAN_TELEMETRY_LOG_LEVEL"); val != "" {
		cfg.Telemetry.LogLevel = val
	}
}
