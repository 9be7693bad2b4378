package handlers

import (
	"delivery-hub-service/internal/api/dto"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/ports"
	"net/http"
	"strconv"
)

const (
	defaultRunLimit = 20
	maxRunLimit     = 100
)

type RunHandler struct {
	Runs ports.RunStore
}

// List returns the most recent persisted runs, newest first.
func (h *RunHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	if h.Runs == nil {
		writeError(w, r, http.StatusServiceUnavailable, "run history is not configured")
		return
	}

	limit := defaultRunLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxRunLimit {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	runs, err := h.Runs.ListRuns(r.Context(), limit)
	if err != nil {
		logger.L().Error("list runs failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRunsResponse{Runs: make([]dto.PlacementResponse, 0, len(runs))}
	for _, run := range runs {
		res.Runs = append(res.Runs, placementResponse(run))
	}

	writeJSON(w, r, http.StatusOK, res)
}
