package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkg.jsn.cam/landdeeds/internal/deed"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// WriteFileAtomic streams fn's output into a temp file next to path, syncs
// it and renames it over path. The destination either keeps its previous
// contents or holds the complete new document. Returns the bytes written.
func WriteFileAtomic(path string, fn func(w io.Writer) error) (written int64, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("%w: create directory %s: %w", ErrWriteFailed, dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return 0, fmt.Errorf("%w: create temp file for %s: %w", ErrWriteFailed, path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriter(tmp)
	cw := &countingWriter{w: bw}
	if err := fn(cw); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	if err := bw.Flush(); err != nil {
		return 0, fmt.Errorf("%w: flush %s: %w", ErrWriteFailed, path, err)
	}
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("%w: sync %s: %w", ErrWriteFailed, path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return 0, fmt.Errorf("%w: chmod %s: %w", ErrWriteFailed, path, err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("%w: close %s: %w", ErrWriteFailed, path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("%w: rename into %s: %w", ErrWriteFailed, path, err)
	}

	return cw.n, nil
}

// WriteFile encodes records with f into path atomically
func WriteFile(f Format, path string, records []deed.Record) (int64, error) {
	return WriteFileAtomic(path, func(w io.Writer) error {
		return f.Write(w, records)
	})
}
