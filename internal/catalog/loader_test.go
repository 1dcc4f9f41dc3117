package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeSource(t, `serial_number,name,price
ABC-1,Piston A,$12.50
ABC-2,Piston B,9
XYZ-9,Gasket,n/a
`)
	store := NewStore()
	loader := NewLoader(store, path)

	rows, err := loader.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows != 3 {
		t.Errorf("rows = %d, want 3", rows)
	}

	snap := store.Snapshot()
	if snap.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", snap.Len())
	}
	got := snap.FindBySerial("ABC-1")
	if len(got) != 1 {
		t.Fatalf("FindBySerial(ABC-1) returned %d records", len(got))
	}
	if got[0].Price == nil || *got[0].Price != 12.5 {
		t.Errorf("Price = %v, want 12.5", got[0].Price)
	}
	gasket := snap.FindBySerial("XYZ-9")
	if len(gasket) != 1 || gasket[0].Price != nil {
		t.Errorf("unparseable price should degrade to nil, got %v", gasket)
	}
}

func TestLoader_SkipsBrokenRows(t *testing.T) {
	// Two data rows have a field-count mismatch. They are skipped; the
	// load still succeeds with the remaining rows.
	path := writeSource(t, `serial_number,name
ABC-1,Piston A
ABC-2,Piston B,extra,fields
XYZ-9
DEF-5,Valve
`)
	store := NewStore()
	loader := NewLoader(store, path)

	rows, err := loader.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}
	snap := store.Snapshot()
	if len(snap.FindBySerial("ABC-1")) != 1 || len(snap.FindBySerial("DEF-5")) != 1 {
		t.Error("expected surviving rows ABC-1 and DEF-5")
	}
}

func TestLoader_SourceNotFound(t *testing.T) {
	store := NewStore()
	store.Replace([]Record{mkRecord("OLD-1", "old part", nil)})
	loader := NewLoader(store, filepath.Join(t.TempDir(), "missing.csv"))

	_, err := loader.Load(t.Context())
	if !errors.Is(err, ErrSourceNotFound) {
		t.Fatalf("Load() error = %v, want ErrSourceNotFound", err)
	}

	// The failed load must not touch the active snapshot.
	snap := store.Snapshot()
	if snap.Len() != 1 || len(snap.FindBySerial("OLD-1")) != 1 {
		t.Error("failed load mutated the active snapshot")
	}
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeSource(t, "")
	store := NewStore()
	loader := NewLoader(store, path)

	rows, err := loader.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}
}

func TestLoader_HeaderOnly(t *testing.T) {
	path := writeSource(t, "serial_number,name\n")
	store := NewStore()
	loader := NewLoader(store, path)

	rows, err := loader.Load(t.Context())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows != 0 {
		t.Errorf("rows = %d, want 0", rows)
	}
	if store.Snapshot().Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Snapshot().Len())
	}
}

func TestLoader_ReloadReplacesAtomically(t *testing.T) {
	path := writeSource(t, "serial_number,name\nA-1,first\n")
	store := NewStore()
	loader := NewLoader(store, path)
	if _, err := loader.Load(t.Context()); err != nil {
		t.Fatal(err)
	}
	before := store.Snapshot()

	if err := os.WriteFile(path, []byte("serial_number,name\nB-1,second\nB-2,third\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	rows, err := loader.Load(t.Context())
	if err != nil {
		t.Fatalf("reload error = %v", err)
	}
	if rows != 2 {
		t.Errorf("rows = %d, want 2", rows)
	}

	// A snapshot taken before the reload never mixes old and new rows.
	if before.Len() != 1 || len(before.FindBySerial("B-1")) != 0 {
		t.Error("pre-reload snapshot observed post-reload rows")
	}
	after := store.Snapshot()
	if after.Len() != 2 || len(after.FindBySerial("A-1")) != 0 {
		t.Error("post-reload snapshot still carries pre-reload rows")
	}
}
