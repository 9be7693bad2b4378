package ports

import (
	"context"
	"delivery-hub-service/internal/domain"
)

// Port: a boundary for retrieving the place dataset from a data source.
type PlaceRepository interface {
	// Retrieve all places in dataset order.
	ListPlaces(ctx context.Context) (domain.PlaceSet, error)
}
