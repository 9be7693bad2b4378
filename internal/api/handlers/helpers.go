package handlers

import (
	"delivery-hub-service/internal/api/dto"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/platform/obs"
	"encoding/json"
	"math"
	"net/http"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Error("encode failed",
			"req_id", obs.RequestID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

func allowOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	return false
}

func placementResponse(p domain.HubPlacement) dto.PlacementResponse {
	res := dto.PlacementResponse{
		RunID:              p.RunID,
		Strategy:           p.Strategy,
		Hubs:               make([]dto.HubResponse, 0, len(p.Hubs)),
		TotalDistanceMiles: p.TotalDistanceMiles,
		Evaluations:        p.Evaluations,
		Iterations:         p.Iterations,
		Converged:          p.Converged,
		DurationMS:         p.Duration.Milliseconds(),
		CreatedAt:          p.CreatedAt,
	}
	for _, h := range p.Hubs {
		res.Hubs = append(res.Hubs, dto.HubResponse{Lat: h.Lat, Lon: h.Lon})
	}
	if !math.IsInf(p.Score, 0) && !math.IsNaN(p.Score) {
		score := p.Score
		res.Score = &score
	}
	return res
}
