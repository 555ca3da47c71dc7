// Command custodian is the maintenance daemon for the weather-warning
// ingestion service. It periodically triggers the external weather check
// and enforces the data-retention policy on soft-deleted records and stale
// on-disk artifacts. It takes no flags; see pkg/config for the environment
// and file configuration it accepts.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wxwatch/custodian/pkg/config"
	"wxwatch/custodian/pkg/daemon"
)

func main() {
	// Optional .env in the working directory, as in the compose deployment.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CUSTODIAN_CONFIG")
	if cfgPath == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			cfgPath = "config.yaml"
		}
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	switch cfg.Telemetry.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("weather warning custodian starting",
		"db_path", cfg.Database.Path,
		"deleted_dir", cfg.Artifacts.DeletedDir,
		"check_interval", cfg.Schedule.CheckInterval,
		"cleanup_at", cfg.Schedule.CleanupAt,
		"retention_days", cfg.Retention.Days,
	)

	d, err := daemon.New(cfg, cfgPath)
	if err != nil {
		logger.Error("initialization failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := d.Run(ctx); err != nil {
		logger.Error("daemon exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("weather warning custodian stopped")
}
