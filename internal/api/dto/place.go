package dto

type PlaceResponse struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Population int     `json:"population"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}

type ListPlacesResponse struct {
	Places          []PlaceResponse `json:"places"`
	Towns           int             `json:"towns"`
	Cities          int             `json:"cities"`
	TotalPopulation int             `json:"total_population"`
}
