// Package handlers contains the typed HTTP handlers of the API.
package handlers

import (
	"context"
	"strings"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/server/dto"
)

// PartsHandler serves spare-part queries and lookups.
type PartsHandler struct {
	store    *catalog.Store
	pageSize int
}

// NewPartsHandler creates a parts handler reading from store, with the
// given default page size.
func NewPartsHandler(store *catalog.Store, pageSize int) *PartsHandler {
	return &PartsHandler{store: store, pageSize: pageSize}
}

// List handles GET /spare-parts: filter, sort, and paginate over the
// current snapshot.
func (h *PartsHandler) List(ctx context.Context, req dto.ListPartsRequest) (*dto.ListPartsResponse, error) {
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = h.pageSize
	}
	res := h.store.Snapshot().Query(catalog.QueryOptions{
		Filter: catalog.Filter{
			Name:   req.Name,
			SN:     req.SN,
			Search: req.Search,
		},
		Sort:     req.Sort,
		Page:     req.Page,
		PageSize: pageSize,
	})
	return &dto.ListPartsResponse{
		Page:       res.Page,
		PageSize:   res.PageSize,
		Total:      res.Total,
		TotalPages: res.TotalPages,
		Data:       res.Data,
	}, nil
}

// Get handles GET /spare-parts/{id}: exact-serial lookup via the index,
// falling back to a case-insensitive substring scan across all serials.
func (h *PartsHandler) Get(ctx context.Context, req dto.GetPartRequest) (*dto.GetPartResponse, error) {
	snap := h.store.Snapshot()
	matches := snap.FindBySerial(req.ID)
	if len(matches) == 0 {
		needle := strings.ToLower(req.ID)
		for _, r := range snap.Records() {
			if strings.Contains(strings.ToLower(r.Serial), needle) {
				matches = append(matches, r)
			}
		}
	}
	// No match is an empty result, not an error: the caller distinguishes
	// by total.
	return &dto.GetPartResponse{Total: len(matches), Data: matches}, nil
}
