package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

type PlaceType string

const (
	PlaceTown PlaceType = "town"
	PlaceCity PlaceType = "city"
)

// ParsePlaceType accepts "town" or "city" in any letter case.
func ParsePlaceType(s string) (PlaceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PlaceTown):
		return PlaceTown, nil
	case string(PlaceCity):
		return PlaceCity, nil
	}
	return "", fmt.Errorf("parse place type: unknown type %q", s)
}

// Represents a single delivery destination loaded from the place dataset.
// A Place is immutable once loaded.
type Place struct {
	Name       string
	Type       PlaceType
	Population int
	Lat        float64
	Lon        float64
}

func (p Place) Coordinates() Coordinates {
	return Coordinates{Lat: p.Lat, Lon: p.Lon}
}

// Ordered collection of places. Insertion order is file order and is
// significant for chained delivery.
type PlaceSet []Place

// Coordinates returns the place positions in dataset order.
func (ps PlaceSet) Coordinates() []Coordinates {
	out := make([]Coordinates, len(ps))
	for i, p := range ps {
		out[i] = p.Coordinates()
	}
	return out
}

// ByPopulation returns a copy sorted by descending population.
// Places with equal population keep their dataset order.
func (ps PlaceSet) ByPopulation() PlaceSet {
	out := slices.Clone(ps)
	slices.SortStableFunc(out, func(a, b Place) int {
		return cmp.Compare(b.Population, a.Population)
	})
	return out
}

// CountByType returns how many places of each type the set contains.
func (ps PlaceSet) CountByType() map[PlaceType]int {
	out := make(map[PlaceType]int, 2)
	for _, p := range ps {
		out[p.Type]++
	}
	return out
}

// TotalPopulation sums the population of every place.
func (ps PlaceSet) TotalPopulation() int {
	total := 0
	for _, p := range ps {
		total += p.Population
	}
	return total
}
