package handlers

import (
	"context"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/server/dto"
)

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	store   *catalog.Store
	version string
}

// NewHealthHandler creates a health handler reporting the given version.
func NewHealthHandler(store *catalog.Store, version string) *HealthHandler {
	return &HealthHandler{store: store, version: version}
}

// Health handles GET /: liveness plus the current row count.
func (h *HealthHandler) Health(ctx context.Context, req dto.HealthRequest) (*dto.HealthResponse, error) {
	return &dto.HealthResponse{
		Status:  "ok",
		Version: h.version,
		Rows:    h.store.Snapshot().Len(),
	}, nil
}
