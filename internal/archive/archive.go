// Package archive keeps a history of generated batches so a fixture set can
// be reproduced or re-exported later without regenerating it.
package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

var ErrRunNotFound = errors.New("run not found")

// Run describes one generated batch
type Run struct {
	ID        string            `json:"id"`
	Version   string            `json:"version"`
	CreatedAt time.Time         `json:"created_at"`
	Seed      uint64            `json:"seed"`
	Seeded    bool              `json:"seeded"`
	Count     int               `json:"count"`
	Outputs   map[string]string `json:"outputs"` // format name -> path
}

// NewRun returns a Run with a fresh ID
func NewRun(count int, seed uint64, seeded bool, now time.Time) Run {
	return Run{
		ID:        uuid.NewString(),
		Version:   SchemaVersion,
		CreatedAt: now,
		Seed:      seed,
		Seeded:    seeded,
		Count:     count,
		Outputs:   make(map[string]string),
	}
}

// Archive stores runs and their records
type Archive interface {
	// SaveRun stores the run and all of its records in one transaction
	SaveRun(run Run, records []deed.Record) error
	// LoadRun fails with ErrIncompatibleRun when the run's schema major
	// version differs from SchemaVersion
	LoadRun(id string) (Run, error)
	// Runs returns all runs, oldest first, whatever their schema version
	Runs() ([]Run, error)
	// Records returns a run's records in generation order
	Records(runID string) ([]deed.Record, error)
	DeleteRun(id string) error

	Close() error
}

// recordKey orders records by generation index under bytewise key sorting
func recordKey(i int) []byte {
	return []byte(fmt.Sprintf("%08d", i))
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

func decodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
