package domain

import "errors"

var ErrEmptyPlaceSet = errors.New("place set is empty")

// Coordinate extents of a place set, in degrees.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// FindBounds scans the places once and returns their extents.
// The accumulator is seeded from the first place, so a single place
// yields that place as both minimum and maximum.
func FindBounds(places PlaceSet) (Bounds, error) {
	if len(places) == 0 {
		return Bounds{}, ErrEmptyPlaceSet
	}

	first := places[0]
	b := Bounds{MinLat: first.Lat, MinLon: first.Lon, MaxLat: first.Lat, MaxLon: first.Lon}

	for _, p := range places[1:] {
		b.MinLat = min(b.MinLat, p.Lat)
		b.MaxLat = max(b.MaxLat, p.Lat)
		b.MinLon = min(b.MinLon, p.Lon)
		b.MaxLon = max(b.MaxLon, p.Lon)
	}

	return b, nil
}

// Pad widens the box by dLat degrees on both latitude edges and dLon
// degrees on both longitude edges.
func (b Bounds) Pad(dLat, dLon float64) Bounds {
	return Bounds{
		MinLat: b.MinLat - dLat,
		MinLon: b.MinLon - dLon,
		MaxLat: b.MaxLat + dLat,
		MaxLon: b.MaxLon + dLon,
	}
}

// Contains reports whether c lies inside the box, edges included.
func (b Bounds) Contains(c Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Center returns the midpoint of the box.
func (b Bounds) Center() Coordinates {
	return Coordinates{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}
