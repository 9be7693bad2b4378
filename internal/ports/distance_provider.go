package ports

import "delivery-hub-service/internal/domain"

// Contract for computing travel distance (miles) between two coordinates.
// Implementations must be pure: symmetric, zero for identical points and
// free of side effects, so cost models can call them from many goroutines.
type DistanceProvider interface {
	Distance(a, b domain.Coordinates) float64
}
