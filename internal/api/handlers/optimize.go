package handlers

import (
	"delivery-hub-service/internal/api/dto"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/ports"
	"delivery-hub-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

type OptimizeHandler struct {
	Places     ports.PlaceRepository
	Runs       ports.RunStore
	Cache      ports.ResultCache
	Distance   ports.DistanceProvider
	NewSampler func(seed uint64) ports.Sampler
	Options    services.Options
}

// Optimize runs the requested scenarios over the stored places.
// Requests that carry a seed are deterministic and served from the result
// cache when possible.
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	strategies := services.AllStrategies
	if len(req.Strategies) > 0 {
		strategies = make([]services.Strategy, 0, len(req.Strategies))
		for _, s := range req.Strategies {
			st, err := services.ParseStrategy(s)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, "unknown strategy: "+s)
				return
			}
			strategies = append(strategies, st)
		}
	}

	opts := h.Options
	if req.Parallel != nil {
		opts.Parallel = *req.Parallel
	}

	deterministic := req.Seed != nil && *req.Seed != 0
	seed := uint64(time.Now().UnixNano())
	if deterministic {
		seed = *req.Seed
	}

	ctx := r.Context()
	log := logger.L().With("seed", seed)

	places, err := h.Places.ListPlaces(ctx)
	if err != nil {
		log.Error("list places failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	if len(places) == 0 {
		writeError(w, r, http.StatusUnprocessableEntity, domain.ErrEmptyPlaceSet.Error())
		return
	}

	var key string
	if deterministic && h.Cache != nil {
		key = services.ResultKey(places, seed, strategies, opts)
		cached, found, err := h.Cache.Get(ctx, key)
		if err != nil {
			log.Warn("result cache lookup failed", "err", err)
		}
		if found {
			writeJSON(w, r, http.StatusOK, optimizeResponse(seed, true, cached))
			return
		}
	}

	runner, err := services.NewRunner(h.Distance, h.NewSampler(seed), opts)
	if err != nil {
		log.Error("build runner failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	runner.Logger = log

	results, err := runner.RunStrategies(ctx, places, strategies)
	if err != nil {
		log.Error("optimize failed", "err", err)
		if ctx.Err() != nil {
			writeError(w, r, http.StatusServiceUnavailable, "request cancelled")
			return
		}
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if h.Runs != nil {
		if err := h.Runs.SaveRuns(ctx, results); err != nil {
			log.Error("save runs failed", "err", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	if key != "" {
		if err := h.Cache.Put(ctx, key, results); err != nil {
			log.Warn("result cache store failed", "err", err)
		}
	}

	writeJSON(w, r, http.StatusOK, optimizeResponse(seed, false, results))
}

func optimizeResponse(seed uint64, cached bool, results []domain.HubPlacement) dto.OptimizeResponse {
	res := dto.OptimizeResponse{
		Seed:    seed,
		Cached:  cached,
		Results: make([]dto.PlacementResponse, 0, len(results)),
	}
	for _, p := range results {
		res.Results = append(res.Results, placementResponse(p))
	}
	return res
}
