package domain

import "fmt"

// Immutable geographic coordinates in degrees (latitude, longitude).
// Used for both places and candidate hub positions.
type Coordinates struct {
	Lat float64
	Lon float64
}

// Offset returns the coordinates moved by dLat and dLon degrees.
func (c Coordinates) Offset(dLat, dLon float64) Coordinates {
	return Coordinates{Lat: c.Lat + dLat, Lon: c.Lon + dLon}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}
