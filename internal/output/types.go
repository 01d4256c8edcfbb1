package output

import (
	"io"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

// Format serializes a batch of deed records to a single document
type Format interface {
	// Write encodes all records to w in generation order
	Write(w io.Writer, records []deed.Record) error

	// Description returns a human-readable description of the layout
	Description() string

	// DefaultFile returns the file name used when none is configured
	DefaultFile() string
}
