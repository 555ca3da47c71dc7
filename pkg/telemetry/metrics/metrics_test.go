package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordJobRun(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewCollector(&Config{Enabled: true}, registry)

	c.RecordJobRun("cleanup", "success", 2*time.Second)
	c.RecordJobRun("cleanup", "success", time.Second)
	c.RecordJobRun("weather_check", "error", time.Millisecond)

	got := testutil.ToFloat64(c.jobRuns.WithLabelValues("cleanup", "success"))
	if got != 2 {
		t.Errorf("cleanup success runs = %v, want 2", got)
	}
	got = testutil.ToFloat64(c.jobRuns.WithLabelValues("weather_check", "error"))
	if got != 1 {
		t.Errorf("weather_check error runs = %v, want 1", got)
	}
}

func TestCollector_RetentionCounters(t *testing.T) {
	c := NewCollector(&Config{Enabled: true}, nil)

	c.RecordRecordsDeleted("city_report", 3)
	c.RecordRecordsDeleted("vpww54_xml", 2)
	c.RecordFilesDeleted(5)
	c.RecordCleanupCompleted(time.Unix(1700000000, 0))

	if got := testutil.ToFloat64(c.recordsDeleted.WithLabelValues("city_report")); got != 3 {
		t.Errorf("city_report deletions = %v, want 3", got)
	}
	if got := testutil.ToFloat64(c.filesDeleted); got != 5 {
		t.Errorf("file deletions = %v, want 5", got)
	}
	if got := testutil.ToFloat64(c.lastCleanup); got != 1700000000 {
		t.Errorf("last cleanup = %v, want 1700000000", got)
	}
}

func TestCollector_DisabledIsNoop(t *testing.T) {
	c := NewCollector(&Config{Enabled: false}, nil)

	c.RecordJobRun("cleanup", "success", time.Second)
	c.RecordRecordsDeleted("city_report", 3)
	c.RecordFilesDeleted(1)

	if got := testutil.ToFloat64(c.filesDeleted); got != 0 {
		t.Errorf("disabled collector recorded %v file deletions", got)
	}
}

func TestCollector_NilReceiverIsSafe(t *testing.T) {
	var c *Collector

	// Components treat the collector as optional.
	c.RecordJobRun("cleanup", "success", time.Second)
	c.RecordRecordsDeleted("city_report", 1)
	c.RecordFilesDeleted(1)
	c.RecordCleanupCompleted(time.Now())
}
