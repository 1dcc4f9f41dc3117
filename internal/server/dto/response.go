package dto

import (
	"github.com/partsd/partsd/internal/catalog"
)

// ListPartsResponse is one page of query results plus paging metadata.
type ListPartsResponse struct {
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
	Data       []catalog.Record `json:"data"`
}

// GetPartResponse is the result of a serial lookup.
type GetPartResponse struct {
	Total int              `json:"total"`
	Data  []catalog.Record `json:"data"`
}

// ReloadResponse reports a successful dataset reload.
type ReloadResponse struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Rows    int    `json:"rows"`
}

// ErrorResponse is the JSON shape of every error payload.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the code and message of an error payload.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}
