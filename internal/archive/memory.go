package archive

import (
	"fmt"
	"sort"
	"sync"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

// MemoryArchive implements Archive using in-memory maps (not persistent)
type MemoryArchive struct {
	runs    map[string]Run
	records map[string][]deed.Record
	mu      sync.RWMutex
}

// NewMemoryArchive creates an empty in-memory archive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{
		runs:    make(map[string]Run),
		records: make(map[string][]deed.Record),
	}
}

func (m *MemoryArchive) SaveRun(run Run, records []deed.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy to prevent external modifications
	m.runs[run.ID] = run
	m.records[run.ID] = append([]deed.Record(nil), records...)

	return nil
}

func (m *MemoryArchive) LoadRun(id string) (Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err := checkRun(run); err != nil {
		return Run{}, err
	}
	return run, nil
}

func (m *MemoryArchive) Runs() ([]Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.Before(runs[j].CreatedAt)
	})
	return runs, nil
}

func (m *MemoryArchive) Records(runID string) ([]deed.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[runID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err := checkRun(run); err != nil {
		return nil, err
	}
	records := m.records[runID]
	return append([]deed.Record(nil), records...), nil
}

func (m *MemoryArchive) DeleteRun(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.runs, id)
	delete(m.records, id)

	return nil
}

// Close is a no-op for the memory archive
func (m *MemoryArchive) Close() error {
	return nil
}
