package dto

import "time"

type OptimizeRequest struct {
	Seed       *uint64  `json:"seed"`
	Strategies []string `json:"strategies"`
	Parallel   *bool    `json:"parallel"`
}

type HubResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type PlacementResponse struct {
	RunID    string        `json:"run_id"`
	Strategy string        `json:"strategy"`
	Hubs     []HubResponse `json:"hubs"`
	// Null when every place coincides with a hub (infinite score).
	Score              *float64  `json:"score"`
	TotalDistanceMiles float64   `json:"total_distance_miles"`
	Evaluations        int64     `json:"evaluations"`
	Iterations         int       `json:"iterations"`
	Converged          bool      `json:"converged"`
	DurationMS         int64     `json:"duration_ms"`
	CreatedAt          time.Time `json:"created_at"`
}

type OptimizeResponse struct {
	Seed    uint64              `json:"seed"`
	Cached  bool                `json:"cached"`
	Results []PlacementResponse `json:"results"`
}

type ListRunsResponse struct {
	Runs []PlacementResponse `json:"runs"`
}
