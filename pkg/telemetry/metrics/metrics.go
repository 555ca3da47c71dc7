package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config contains configuration for the metrics collector.
type Config struct {
	// Enabled turns metric recording on. When false, all Record* calls
	// are no-ops.
	Enabled bool

	// Namespace is the metric name prefix. Default: "custodian".
	Namespace string
}

// Collector owns the Prometheus metrics for the maintenance daemon.
// It manages metric registration and provides a unified interface for
// recording job executions and retention activity.
type Collector struct {
	config   *Config
	registry *prometheus.Registry

	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec

	recordsDeleted *prometheus.CounterVec
	filesDeleted   prometheus.Counter
	lastCleanup    prometheus.Gauge
}

// NewCollector creates a new metrics collector with the specified
// configuration and Prometheus registry. If registry is nil, a private
// registry is created.
func NewCollector(cfg *Config, registry *prometheus.Registry) *Collector {
	if cfg == nil {
		cfg = &Config{Enabled: true}
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "custodian"
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "job_runs_total",
			Help:      "Total scheduled job executions by job name and outcome.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job executions.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300, 900},
		}, []string{"job"}),
		recordsDeleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "records_deleted_total",
			Help:      "Total soft-deleted records physically removed, by table.",
		}, []string{"table"}),
		filesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Name:      "files_deleted_total",
			Help:      "Total expired artifact files removed.",
		}),
		lastCleanup: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Name:      "last_cleanup_timestamp_seconds",
			Help:      "Unix time of the last completed cleanup run.",
		}),
	}

	registry.MustRegister(
		c.jobRuns,
		c.jobDuration,
		c.recordsDeleted,
		c.filesDeleted,
		c.lastCleanup,
	)

	return c
}

// RecordJobRun records one scheduled job execution.
//
// Parameters:
//   - job: registered job name (e.g., "weather_check", "cleanup")
//   - status: "success" or "error"
//   - duration: wall-clock execution time
func (c *Collector) RecordJobRun(job, status string, duration time.Duration) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.jobRuns.WithLabelValues(job, status).Inc()
	c.jobDuration.WithLabelValues(job).Observe(duration.Seconds())
}

// RecordRecordsDeleted records physically removed rows for one table.
func (c *Collector) RecordRecordsDeleted(table string, count int64) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.recordsDeleted.WithLabelValues(table).Add(float64(count))
}

// RecordFilesDeleted records removed artifact files.
func (c *Collector) RecordFilesDeleted(count int64) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.filesDeleted.Add(float64(count))
}

// RecordCleanupCompleted marks the completion time of a cleanup run.
func (c *Collector) RecordCleanupCompleted(t time.Time) {
	if c == nil || !c.config.Enabled {
		return
	}
	c.lastCleanup.Set(float64(t.Unix()))
}

// Registry returns the Prometheus registry for exposing metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
