package distance

import "delivery-hub-service/internal/domain"

// GreatCircle implements DistanceProvider with the haversine distance on a
// sphere of radius domain.EarthRadiusMiles. It is stateless and safe for
// concurrent use.
type GreatCircle struct{}

func NewGreatCircle() GreatCircle {
	return GreatCircle{}
}

func (GreatCircle) Distance(a, b domain.Coordinates) float64 {
	return domain.Distance(a, b)
}
