// Holds the active dataset snapshot and its serial index.

package catalog

import (
	"sync"
)

// Snapshot is one complete, self-consistent view of the dataset: the ordered
// records (insertion order = source row order) plus an index from each
// distinct non-empty serial to the positions sharing it. Duplicate serials
// are legal and kept as multiple positions. A Snapshot is never mutated
// after it is installed.
type Snapshot struct {
	records  []Record
	bySerial map[string][]int
}

// newSnapshot builds the serial index from scratch for the given records.
func newSnapshot(records []Record) *Snapshot {
	s := &Snapshot{
		records:  records,
		bySerial: make(map[string][]int),
	}
	for i, r := range records {
		if r.Serial == "" {
			continue
		}
		s.bySerial[r.Serial] = append(s.bySerial[r.Serial], i)
	}
	return s
}

// Len returns the number of records in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records returns the full ordered record slice. Callers must not modify it.
func (s *Snapshot) Records() []Record {
	return s.records
}

// FindBySerial returns the records whose serial matches exactly
// (case-sensitive), in source row order. Returns an empty slice when the
// serial is not indexed.
func (s *Snapshot) FindBySerial(serial string) []Record {
	positions := s.bySerial[serial]
	if len(positions) == 0 {
		return []Record{}
	}
	out := make([]Record, 0, len(positions))
	for _, i := range positions {
		out = append(out, s.records[i])
	}
	return out
}

// Store owns the process-wide active snapshot. Readers always observe one
// complete snapshot; Replace swaps in a fully built one under the lock, so a
// reader never sees a mix of old and new rows. The store starts empty.
type Store struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewStore creates a store holding an empty snapshot.
func NewStore() *Store {
	return &Store{snap: newSnapshot(nil)}
}

// Replace builds a fresh snapshot (records plus serial index) and installs
// it as the active one. The previous snapshot stays valid for readers that
// already hold it.
func (st *Store) Replace(records []Record) {
	snap := newSnapshot(records)
	st.mu.Lock()
	st.snap = snap
	st.mu.Unlock()
}

// Snapshot returns the currently active snapshot.
func (st *Store) Snapshot() *Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.snap
}
