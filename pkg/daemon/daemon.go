// Package daemon assembles the record store, retention engine, weather
// check invoker, and scheduler into the long-running maintenance process.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"wxwatch/custodian/pkg/checker"
	"wxwatch/custodian/pkg/config"
	"wxwatch/custodian/pkg/retention"
	"wxwatch/custodian/pkg/scheduler"
	"wxwatch/custodian/pkg/store"
	"wxwatch/custodian/pkg/telemetry/metrics"
)

// Job names as they appear in logs and metrics.
const (
	JobWeatherCheck = "weather_check"
	JobCleanup      = "cleanup"
)

// Daemon wires the record store, retention engine, weather check invoker,
// and scheduler into one long-running process.
type Daemon struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	store     *store.SQLiteStore
	engine    *retention.Engine
	invoker   *checker.Invoker
	sched     *scheduler.Scheduler
	collector *metrics.Collector

	// retentionDays is read per cleanup run so config hot reloads apply
	// without a restart.
	retentionDays atomic.Int64
}

// New builds the daemon from configuration. An unreachable record store is
// a fatal initialization failure. cfgPath enables config hot reload when
// non-empty.
func New(cfg *config.Config, cfgPath string) (*Daemon, error) {
	logger := slog.Default().With("component", "daemon")

	sqlCfg := store.DefaultSQLiteConfig()
	sqlCfg.Path = cfg.Database.Path
	st, err := store.NewSQLiteStore(sqlCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}

	collector := metrics.NewCollector(&metrics.Config{Enabled: true}, nil)

	d := &Daemon{
		cfg:     cfg,
		cfgPath: cfgPath,
		logger:  logger,
		store:   st,
		engine: retention.NewEngine(st, nil, &retention.Config{
			DeletedDir: cfg.Artifacts.DeletedDir,
		}, collector),
		invoker:   checker.NewInvoker(checker.NewHTTPChecker(cfg.Checker.FeedURL)),
		collector: collector,
	}
	d.retentionDays.Store(int64(cfg.Retention.Days))

	sched := scheduler.New(collector)
	sched.OnStart = st.Migrate

	if err := sched.Every(JobWeatherCheck, cfg.Schedule.CheckInterval, true, d.invoker.Invoke); err != nil {
		st.Close()
		return nil, err
	}

	hour, minute, err := cfg.Schedule.CleanupTime()
	if err != nil {
		st.Close()
		return nil, err
	}
	if err := sched.Daily(JobCleanup, hour, minute, d.runCleanup); err != nil {
		st.Close()
		return nil, err
	}
	d.sched = sched

	return d, nil
}

// Run starts the metrics endpoint and config watcher, then blocks in the
// scheduler loop until ctx is cancelled. The record store is closed on the
// way out.
func (d *Daemon) Run(ctx context.Context) error {
	if addr := d.cfg.Telemetry.MetricsAddr; addr != "" {
		d.serveMetrics(ctx, addr)
	}

	if d.cfgPath != "" {
		watcher := config.NewWatcher(d.cfgPath)
		go func() {
			if err := watcher.Watch(ctx, d.applyReload); err != nil {
				d.logger.Error("config watcher exited", "error", err)
			}
		}()
	}

	err := d.sched.Run(ctx)

	if cerr := d.store.Close(); cerr != nil {
		d.logger.Error("failed to close record store", "error", cerr)
	}

	return err
}

// runCleanup is the daily job callback. The retention period is re-read on
// every run; retention math is age-gated, so running more than once per day
// deletes nothing extra.
func (d *Daemon) runCleanup(ctx context.Context) error {
	_, err := d.engine.RunCleanup(ctx, int(d.retentionDays.Load()))
	return err
}

// applyReload adopts the parts of a reloaded configuration that can change
// at runtime. Schedule and store changes still require a restart.
func (d *Daemon) applyReload(cfg *config.Config) {
	old := d.retentionDays.Swap(int64(cfg.Retention.Days))
	if old != int64(cfg.Retention.Days) {
		d.logger.Info("retention period updated",
			"previous_days", old,
			"days", cfg.Retention.Days,
		)
	}
}

// serveMetrics exposes the Prometheus endpoint in the background and shuts
// it down when ctx is cancelled.
func (d *Daemon) serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", d.collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		d.logger.Info("metrics endpoint listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			d.logger.Error("metrics endpoint failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}
