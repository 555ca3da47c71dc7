// Package metrics provides Prometheus metrics collection for the custodian.
//
// # Overview
//
// The metrics package tracks scheduled job outcomes and cleanup results:
// job run counts and durations by name and status, permanently deleted
// record counts by table, deleted artifact file counts, and the time of
// the last successful cleanup run.
//
// # Usage
//
//	collector := metrics.NewCollector(config, nil)
//
//	// Record a job run
//	collector.RecordJobRun("cleanup", "success", duration)
//
//	// Record cleanup results
//	collector.RecordRecordsDeleted("city_report", 12)
//	collector.RecordFilesDeleted(3)
//	collector.RecordCleanupCompleted()
//
// All Record methods are safe on a nil or disabled collector, so callers
// never need to guard metric calls.
//
// Metrics are registered in a private registry exposed through Handler(),
// which serves them in Prometheus exposition or OpenMetrics format.
package metrics
