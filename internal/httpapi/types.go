package httpapi

// ConflateSide is one half of an ad-hoc match request: a display name and
// the opaque id it should be reported back under.
type ConflateSide struct {
	ID   int64  `json:"id"`
	Name string `json:"name" binding:"required"`
}

// ConflateRequest asks whether two standalone names (not drawn from any
// store) refer to the same road segment.
type ConflateRequest struct {
	Master ConflateSide `json:"master" binding:"required"`
	New    ConflateSide `json:"new" binding:"required"`
	Strict bool         `json:"strict"`
}

// ConflateResponse reports the matcher's verdict for one ConflateRequest.
type ConflateResponse struct {
	Matched  bool    `json:"matched"`
	MasterID int64   `json:"master_id,omitempty"`
	Score    float64 `json:"score"`
}

// ErrorResponse is the JSON body returned for any 4xx/5xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatsResponse mirrors cache.Stats for the decision cache backing this
// server, or all-zero values when no cache was configured.
type StatsResponse struct {
	CacheHitRate float64 `json:"cache_hit_rate"`
	TotalHits    int64   `json:"total_hits"`
	TotalMiss    int64   `json:"total_miss"`
	TotalItems   int64   `json:"total_items"`
}

// HealthResponse is the body returned by /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// SearchResponse lists master feature ids whose names best match a free
// text query, closest first.
type SearchResponse struct {
	FeatureIDs []int64 `json:"feature_ids"`
}
