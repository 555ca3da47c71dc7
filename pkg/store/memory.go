package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements the RecordStore interface using in-memory maps.
// This implementation is intended for testing only and should not be used in production.
type MemoryStore struct {
	mu          sync.Mutex
	cityReports map[int64]CityReport
	warningXML  map[int64]WarningXML

	// CommitErr, when set, is returned by the next Commit instead of
	// applying staged deletes. Used to exercise sweep atomicity in tests.
	CommitErr error
}

// NewMemoryStore creates a new in-memory record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cityReports: make(map[int64]CityReport),
		warningXML:  make(map[int64]WarningXML),
	}
}

// Migrate is a no-op for the memory backend.
func (s *MemoryStore) Migrate(ctx context.Context) error {
	return nil
}

// Begin opens a transaction. Deletes are staged and applied on Commit.
func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	return &memoryTx{store: s}, nil
}

// Close is a no-op for the memory backend.
func (s *MemoryStore) Close() error {
	return nil
}

// PutCityReport inserts or replaces a city report row.
func (s *MemoryStore) PutCityReport(r CityReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cityReports[r.ID] = r
}

// PutWarningXML inserts or replaces a warning document row.
func (s *MemoryStore) PutWarningXML(w WarningXML) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warningXML[w.ID] = w
}

// CityReportIDs returns the IDs of all stored city report rows, sorted.
func (s *MemoryStore) CityReportIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.cityReports))
	for id := range s.cityReports {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// WarningXMLIDs returns the IDs of all stored warning document rows, sorted.
func (s *MemoryStore) WarningXMLIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int64, 0, len(s.warningXML))
	for id := range s.warningXML {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// memoryTx stages deletes against a MemoryStore until Commit.
type memoryTx struct {
	store             *MemoryStore
	stagedCityReports []int64
	stagedWarningXML  []int64
	done              bool
}

func (t *memoryTx) ExpiredCityReports(ctx context.Context, cutoff time.Time) ([]CityReport, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	var results []CityReport
	for _, r := range t.store.cityReports {
		if r.Deleted && r.UpdatedAt.Before(cutoff) {
			results = append(results, r)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (t *memoryTx) DeleteCityReports(ctx context.Context, ids []int64) (int64, error) {
	t.stagedCityReports = append(t.stagedCityReports, ids...)
	return int64(len(ids)), nil
}

func (t *memoryTx) ExpiredWarningXML(ctx context.Context, cutoff time.Time) ([]WarningXML, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	var results []WarningXML
	for _, w := range t.store.warningXML {
		if w.Deleted && w.UpdatedAt.Before(cutoff) {
			results = append(results, w)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].ID < results[j].ID })
	return results, nil
}

func (t *memoryTx) DeleteWarningXML(ctx context.Context, ids []int64) (int64, error) {
	t.stagedWarningXML = append(t.stagedWarningXML, ids...)
	return int64(len(ids)), nil
}

func (t *memoryTx) Commit() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.done {
		return NewStorageError("memory", "commit", errTxDone)
	}
	t.done = true

	if err := t.store.CommitErr; err != nil {
		t.store.CommitErr = nil
		return NewStorageError("memory", "commit", err)
	}

	for _, id := range t.stagedCityReports {
		delete(t.store.cityReports, id)
	}
	for _, id := range t.stagedWarningXML {
		delete(t.store.warningXML, id)
	}
	return nil
}

func (t *memoryTx) Rollback() error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true
	t.stagedCityReports = nil
	t.stagedWarningXML = nil
	return nil
}
