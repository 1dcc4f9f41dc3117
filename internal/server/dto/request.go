package dto

// ListPartsRequest carries the query parameters of GET /spare-parts.
// Absent or non-numeric page and page_size values stay zero and fall back
// to the defaults instead of failing the request.
type ListPartsRequest struct {
	Name     string `query:"name"`
	SN       string `query:"sn"`
	Search   string `query:"search"`
	Sort     string `query:"sort"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// Validate is a no-op: every combination of list parameters is serviceable,
// out-of-range paging is clamped by the query engine.
func (r *ListPartsRequest) Validate() error {
	return nil
}

// GetPartRequest carries the path parameter of GET /spare-parts/{id}.
type GetPartRequest struct {
	ID string `path:"id"`
}

// Validate validates the lookup request fields.
func (r *GetPartRequest) Validate() error {
	if r.ID == "" {
		return MissingField("id")
	}
	return nil
}

// ReloadRequest is a request to re-run the ingestion pipeline.
type ReloadRequest struct{}

// Validate is a no-op for ReloadRequest.
func (r *ReloadRequest) Validate() error {
	return nil
}

// HealthRequest is a request for the liveness probe.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error {
	return nil
}
