package retention

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"wxwatch/custodian/pkg/store"
	"wxwatch/custodian/pkg/telemetry/metrics"
)

// Sweep names, in execution order.
const (
	SweepCityReports = "city_report"
	SweepWarningXML  = "vpww54_xml"
	SweepArtifacts   = "artifacts"
)

// ArtifactPattern is the glob matched against the deleted-artifacts
// directory. Only ingestion XML is ever placed there.
const ArtifactPattern = "*.xml"

// DefaultRetentionDays is the retention period applied when none is
// configured.
const DefaultRetentionDays = 30

// Config contains configuration for the retention engine.
type Config struct {
	// DeletedDir is the directory holding artifacts that ingestion has
	// moved aside for eventual deletion.
	DeletedDir string
}

// SweepResult describes one completed (or failed) sweep.
type SweepResult struct {
	Sweep   string // sweep name
	Matched int    // entities matching the eligibility predicate
	Deleted int64  // entities physically removed
	Err     error  // nil unless the sweep failed
}

// Report aggregates the results of the sweeps that ran in one cleanup
// invocation. When a sweep fails, later sweeps do not appear.
type Report struct {
	Cutoff time.Time
	Sweeps []SweepResult
}

// TotalDeleted returns the number of entities removed across all sweeps.
func (r *Report) TotalDeleted() int64 {
	var total int64
	for _, s := range r.Sweeps {
		total += s.Deleted
	}
	return total
}

// SweepError wraps a failure inside a named sweep.
type SweepError struct {
	Sweep string
	Cause error
}

// Error implements the error interface.
func (e *SweepError) Error() string {
	return fmt.Sprintf("retention sweep %q failed: %v", e.Sweep, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *SweepError) Unwrap() error {
	return e.Cause
}

// Engine permanently deletes expired soft-deleted records and expired
// artifact files. It never sets the soft-delete flag; it only observes it.
type Engine struct {
	store   store.RecordStore
	fs      ArtifactFS
	config  *Config
	logger  *slog.Logger
	metrics *metrics.Collector

	// now is the sweep-time clock, swappable in tests.
	now func() time.Time
}

// NewEngine creates a retention engine over the given record store and
// artifact filesystem. A nil fs uses the real filesystem; metrics may be nil.
func NewEngine(st store.RecordStore, fs ArtifactFS, config *Config, collector *metrics.Collector) *Engine {
	if fs == nil {
		fs = OSArtifactFS{}
	}
	if config == nil {
		config = &Config{DeletedDir: "data/deleted"}
	}
	return &Engine{
		store:   st,
		fs:      fs,
		config:  config,
		logger:  slog.Default().With("component", "retention"),
		metrics: collector,
		now:     time.Now,
	}
}

// RunCleanup removes soft-deleted records and artifact files older than
// period days. Three sweeps run in fixed order: city reports, VPWW54
// documents, then artifact files. The sweeps are sequential and not
// mutually isolated: the first failure aborts the remaining sweeps of this
// invocation and is returned to the caller alongside the partial report.
//
// Entities exactly at the boundary age are kept; eligibility requires a
// timestamp strictly before the cutoff computed at sweep time. Running
// cleanup again immediately removes nothing further.
func (e *Engine) RunCleanup(ctx context.Context, period int) (*Report, error) {
	if period <= 0 {
		period = DefaultRetentionDays
	}
	cutoff := e.now().AddDate(0, 0, -period)
	report := &Report{Cutoff: cutoff}

	e.logger.Info("cleanup started", "retention_days", period, "cutoff", cutoff)

	result := e.sweepCityReports(ctx, cutoff)
	report.Sweeps = append(report.Sweeps, result)
	if result.Err != nil {
		return report, &SweepError{Sweep: result.Sweep, Cause: result.Err}
	}
	e.metrics.RecordRecordsDeleted(SweepCityReports, result.Deleted)

	result = e.sweepWarningXML(ctx, cutoff)
	report.Sweeps = append(report.Sweeps, result)
	if result.Err != nil {
		return report, &SweepError{Sweep: result.Sweep, Cause: result.Err}
	}
	e.metrics.RecordRecordsDeleted(SweepWarningXML, result.Deleted)

	result = e.sweepArtifacts(ctx, cutoff)
	report.Sweeps = append(report.Sweeps, result)
	if result.Err != nil {
		return report, &SweepError{Sweep: result.Sweep, Cause: result.Err}
	}
	e.metrics.RecordFilesDeleted(result.Deleted)

	e.metrics.RecordCleanupCompleted(e.now())
	e.logger.Info("cleanup completed", "total_deleted", report.TotalDeleted(), "cutoff", cutoff)

	return report, nil
}

// sweepCityReports deletes expired soft-deleted city report rows in a
// single transaction. An error before Commit removes nothing.
func (e *Engine) sweepCityReports(ctx context.Context, cutoff time.Time) SweepResult {
	result := SweepResult{Sweep: SweepCityReports}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		result.Err = err
		return result
	}

	reports, err := tx.ExpiredCityReports(ctx, cutoff)
	if err != nil {
		tx.Rollback()
		result.Err = err
		return result
	}
	result.Matched = len(reports)

	ids := make([]int64, 0, len(reports))
	for _, r := range reports {
		e.logger.Info("deleting city report",
			"id", r.ID,
			"lmo", r.LMO,
			"xmlfile", r.XMLFile,
			"city", r.City,
			"kind", r.KindName,
			"status", r.Status,
			"updated_at", r.UpdatedAt,
		)
		ids = append(ids, r.ID)
	}

	deleted, err := tx.DeleteCityReports(ctx, ids)
	if err != nil {
		tx.Rollback()
		result.Err = err
		return result
	}

	if err := tx.Commit(); err != nil {
		result.Err = err
		return result
	}

	result.Deleted = deleted
	e.logger.Info("city report sweep completed", "matched", result.Matched, "deleted", deleted)
	return result
}

// sweepWarningXML deletes expired soft-deleted VPWW54 rows in its own
// transaction, independent of the city report sweep.
func (e *Engine) sweepWarningXML(ctx context.Context, cutoff time.Time) SweepResult {
	result := SweepResult{Sweep: SweepWarningXML}

	tx, err := e.store.Begin(ctx)
	if err != nil {
		result.Err = err
		return result
	}

	docs, err := tx.ExpiredWarningXML(ctx, cutoff)
	if err != nil {
		tx.Rollback()
		result.Err = err
		return result
	}
	result.Matched = len(docs)

	ids := make([]int64, 0, len(docs))
	for _, w := range docs {
		e.logger.Info("deleting warning document",
			"id", w.ID,
			"lmo", w.LMO,
			"xmlfile", w.XMLFile,
			"updated_at", w.UpdatedAt,
		)
		ids = append(ids, w.ID)
	}

	deleted, err := tx.DeleteWarningXML(ctx, ids)
	if err != nil {
		tx.Rollback()
		result.Err = err
		return result
	}

	if err := tx.Commit(); err != nil {
		result.Err = err
		return result
	}

	result.Deleted = deleted
	e.logger.Info("warning document sweep completed", "matched", result.Matched, "deleted", deleted)
	return result
}

// sweepArtifacts removes expired files from the deleted-artifacts
// directory. Each removal is immediate; there is no transaction. A crash
// mid-sweep leaves a partially-cleaned directory, which is safe: the next
// run re-evaluates whatever remains. The first filesystem error aborts the
// remainder of the sweep.
func (e *Engine) sweepArtifacts(ctx context.Context, cutoff time.Time) SweepResult {
	result := SweepResult{Sweep: SweepArtifacts}

	pattern := filepath.Join(e.config.DeletedDir, ArtifactPattern)
	files, err := e.fs.Glob(pattern)
	if err != nil {
		result.Err = err
		return result
	}

	for _, file := range files {
		info, err := e.fs.Stat(file)
		if err != nil {
			result.Err = err
			return result
		}

		if !info.ModTime().Before(cutoff) {
			e.logger.Info("retaining artifact", "file", filepath.Base(file), "mtime", info.ModTime())
			continue
		}
		result.Matched++

		if err := e.fs.Remove(file); err != nil {
			result.Err = err
			return result
		}
		result.Deleted++
		e.logger.Info("deleted artifact", "file", filepath.Base(file), "mtime", info.ModTime())
	}

	e.logger.Info("artifact sweep completed", "matched", result.Matched, "deleted", result.Deleted)
	return result
}
