// Implements the streaming CSV ingestion pipeline feeding the store.

package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"
)

// ErrSourceNotFound is returned by Load when the source file is absent.
var ErrSourceNotFound = errors.New("source file not found")

// Loader reads the tabular source end to end, normalizes every row, and
// installs the result into the store as one atomic replace. Concurrent
// loads are serialized; queries in flight keep the snapshot they hold.
type Loader struct {
	store *Store
	path  string

	mu sync.Mutex
}

// NewLoader creates a loader reading from path into store.
func NewLoader(store *Store, path string) *Loader {
	return &Loader{store: store, path: path}
}

// Path returns the source file location.
func (l *Loader) Path() string {
	return l.path
}

// Load streams the source row by row, accumulating normalized records, and
// swaps the accumulated snapshot in on success. Returns the number of rows
// ingested.
//
// Rows that cannot be decoded (wrong field count, broken quoting) are logged
// and skipped. A missing source or a fatal read error fails the whole call
// and leaves the active snapshot untouched.
func (l *Loader) Load(ctx context.Context) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := time.Now()
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrSourceNotFound, l.path)
		}
		return 0, fmt.Errorf("failed to open source %s: %w", l.path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			// An empty file yields an empty dataset, not an error.
			l.store.Replace(nil)
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read header of %s: %w", l.path, err)
	}

	var records []Record
	skipped := 0
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// ParseError covers per-row problems (field count, quoting);
			// anything else is a stream failure.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				slog.WarnContext(ctx, "Skipping undecodable row", "path", l.path, "err", err)
				continue
			}
			return 0, fmt.Errorf("failed to read source %s: %w", l.path, err)
		}
		records = append(records, Normalize(header, row))
	}

	l.store.Replace(records)
	slog.InfoContext(ctx, "Dataset loaded", "path", l.path, "rows", len(records), "skipped", skipped, "duration", time.Since(start))
	return len(records), nil
}
