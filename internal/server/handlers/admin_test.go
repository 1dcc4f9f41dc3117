package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/server/dto"
)

func TestAdminHandler_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	if err := os.WriteFile(path, []byte("serial_number,name\nR-1,rotor\nR-2,stator\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := catalog.NewStore()
	h := NewAdminHandler(catalog.NewLoader(store, path))

	resp, err := h.Reload(t.Context(), dto.ReloadRequest{})
	if err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("Status = %q, want ok", resp.Status)
	}
	if resp.Rows != 2 {
		t.Errorf("Rows = %d, want 2", resp.Rows)
	}
	if store.Snapshot().Len() != 2 {
		t.Errorf("store has %d rows, want 2", store.Snapshot().Len())
	}
}

func TestAdminHandler_ReloadMissingSource(t *testing.T) {
	store := catalog.NewStore()
	store.Replace([]catalog.Record{record(t, "OLD-1", "old", "")})
	h := NewAdminHandler(catalog.NewLoader(store, filepath.Join(t.TempDir(), "gone.csv")))

	_, err := h.Reload(t.Context(), dto.ReloadRequest{})
	if err == nil {
		t.Fatal("Reload() succeeded, want error")
	}
	var apiErr *dto.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is %T, want *dto.APIError", err)
	}
	if apiErr.Code() != dto.ErrorCodeSourceNotFound {
		t.Errorf("code = %q, want %q", apiErr.Code(), dto.ErrorCodeSourceNotFound)
	}

	// The failed reload leaves the prior snapshot serving.
	if store.Snapshot().Len() != 1 {
		t.Error("failed reload mutated the active snapshot")
	}
}
