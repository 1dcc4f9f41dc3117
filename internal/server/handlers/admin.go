// Handles operational endpoints: dataset reload.

package handlers

import (
	"context"
	"errors"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/server/dto"
)

// AdminHandler triggers dataset reloads.
type AdminHandler struct {
	loader *catalog.Loader
}

// NewAdminHandler creates an admin handler driving loader.
func NewAdminHandler(loader *catalog.Loader) *AdminHandler {
	return &AdminHandler{loader: loader}
}

// Reload handles POST /reload: re-runs the ingestion pipeline against the
// configured source. On failure the previous snapshot keeps serving and the
// error is reported to the caller.
func (h *AdminHandler) Reload(ctx context.Context, req dto.ReloadRequest) (*dto.ReloadResponse, error) {
	rows, err := h.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, catalog.ErrSourceNotFound) {
			return nil, dto.SourceNotFound(err)
		}
		return nil, dto.InternalWithError("Failed to reload dataset", err)
	}
	return &dto.ReloadResponse{Status: "ok", Rows: rows}, nil
}
