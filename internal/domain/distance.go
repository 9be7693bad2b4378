package domain

import "math"

// EarthRadiusMiles is the sphere radius used for great-circle distances.
const EarthRadiusMiles = 3958.75

const degToRad = math.Pi / 180

// Distance returns the great-circle distance in miles between a and b
// using the haversine formula. Inputs are in degrees and are not validated.
func Distance(a, b Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * degToRad
	dLon := (b.Lon - a.Lon) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(a.Lat*degToRad)*math.Cos(b.Lat*degToRad)*sinLon*sinLon

	// Rounding can push h slightly outside [0, 1] for near-antipodal points.
	h = math.Min(1, math.Max(0, h))

	return EarthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
