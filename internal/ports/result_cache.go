package ports

import (
	"context"
	"delivery-hub-service/internal/domain"
)

// Cache for deterministic optimization results keyed by dataset and seed.
// Get reports found=false on a miss; a miss is not an error.
type ResultCache interface {
	Get(ctx context.Context, key string) (_ []domain.HubPlacement, found bool, err error)
	Put(ctx context.Context, key string, results []domain.HubPlacement) error
}
