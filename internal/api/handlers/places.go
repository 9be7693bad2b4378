package handlers

import (
	"delivery-hub-service/internal/api/dto"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/logger"
	"delivery-hub-service/internal/ports"
	"net/http"
)

// PlaceHandler exposes read-only place retrieval endpoints.
type PlaceHandler struct {
	Repo ports.PlaceRepository
}

// List returns places in dataset order, or by descending population with
// ?sort=population.
func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	sortBy := r.URL.Query().Get("sort")
	if sortBy != "" && sortBy != "population" {
		writeError(w, r, http.StatusBadRequest, "sort must be empty or population")
		return
	}

	places, err := h.Repo.ListPlaces(r.Context())
	if err != nil {
		logger.L().Error("list places failed", "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	if sortBy == "population" {
		places = places.ByPopulation()
	}

	counts := places.CountByType()
	res := dto.ListPlacesResponse{
		Places:          make([]dto.PlaceResponse, 0, len(places)),
		Towns:           counts[domain.PlaceTown],
		Cities:          counts[domain.PlaceCity],
		TotalPopulation: places.TotalPopulation(),
	}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			Name:       p.Name,
			Type:       string(p.Type),
			Population: p.Population,
			Lat:        p.Lat,
			Lon:        p.Lon,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
