package ports

import (
	"context"
	"delivery-hub-service/internal/domain"
)

// Port: persistence for completed optimization scenarios.
type RunStore interface {
	SaveRuns(ctx context.Context, runs []domain.HubPlacement) error
	// Return the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]domain.HubPlacement, error)
}
