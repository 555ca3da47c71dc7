package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != DefaultDBPath {
		t.Errorf("database.path = %q, want %q", cfg.Database.Path, DefaultDBPath)
	}
	if cfg.Artifacts.DeletedDir != DefaultDeletedDir {
		t.Errorf("artifacts.deleted_dir = %q, want %q", cfg.Artifacts.DeletedDir, DefaultDeletedDir)
	}
	if cfg.Schedule.CheckInterval != DefaultCheckInterval {
		t.Errorf("schedule.check_interval = %s, want %s", cfg.Schedule.CheckInterval, DefaultCheckInterval)
	}
	if cfg.Schedule.CleanupAt != DefaultCleanupAt {
		t.Errorf("schedule.cleanup_at = %q, want %q", cfg.Schedule.CleanupAt, DefaultCleanupAt)
	}
	if cfg.Retention.Days != DefaultRetentionDays {
		t.Errorf("retention.days = %d, want %d", cfg.Retention.Days, DefaultRetentionDays)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
database:
  path: /data/db/weather.sqlite3
artifacts:
  deleted_dir: /data/deleted
schedule:
  check_interval: 5m
  cleanup_at: "03:30"
retention:
  days: 14
telemetry:
  metrics_addr: ":9091"
  log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != "/data/db/weather.sqlite3" {
		t.Errorf("database.path = %q", cfg.Database.Path)
	}
	if cfg.Schedule.CheckInterval != 5*time.Minute {
		t.Errorf("check_interval = %s, want 5m", cfg.Schedule.CheckInterval)
	}
	if cfg.Retention.Days != 14 {
		t.Errorf("retention.days = %d, want 14", cfg.Retention.Days)
	}
	if cfg.Telemetry.MetricsAddr != ":9091" {
		t.Errorf("metrics_addr = %q, want :9091", cfg.Telemetry.MetricsAddr)
	}
	// Unset fields still receive defaults.
	if cfg.Checker.FeedURL != DefaultFeedURL {
		t.Errorf("feed_url = %q, want default", cfg.Checker.FeedURL)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() should fail for a missing explicit file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CUSTODIAN_RETENTION_DAYS", "7")
	t.Setenv("CUSTODIAN_SCHEDULE_CHECK_INTERVAL", "1m")
	t.Setenv("CUSTODIAN_SCHEDULE_CLEANUP_AT", "02:15")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Retention.Days != 7 {
		t.Errorf("retention.days = %d, want 7", cfg.Retention.Days)
	}
	if cfg.Schedule.CheckInterval != time.Minute {
		t.Errorf("check_interval = %s, want 1m", cfg.Schedule.CheckInterval)
	}
	if cfg.Schedule.CleanupAt != "02:15" {
		t.Errorf("cleanup_at = %q, want 02:15", cfg.Schedule.CleanupAt)
	}
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("DB_PATH", "/data/db/weather.sqlite3")
	t.Setenv("DELETED_DIR", "/data/deleted")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Database.Path != "/data/db/weather.sqlite3" {
		t.Errorf("database.path = %q, want legacy DB_PATH value", cfg.Database.Path)
	}
	if cfg.Artifacts.DeletedDir != "/data/deleted" {
		t.Errorf("artifacts.deleted_dir = %q, want legacy DELETED_DIR value", cfg.Artifacts.DeletedDir)
	}
}

func TestLoad_NewNamesWinOverLegacy(t *testing.T) {
	t.Setenv("DB_PATH", "/legacy/weather.sqlite3")
	t.Setenv("CUSTODIAN_DATABASE_PATH", "/new/weather.sqlite3")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Database.Path != "/new/weather.sqlite3" {
		t.Errorf("database.path = %q, want CUSTODIAN_DATABASE_PATH value", cfg.Database.Path)
	}
}
