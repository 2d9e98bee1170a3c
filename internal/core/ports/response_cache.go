package ports

import (
	"context"

	"github.com/mapledash/character-api/internal/core/domain"
)

// ResponseCache stores recent composite responses by request signature.
// Get returns (nil, nil) on a miss. Implementations with a zero TTL never hit
// and never store.
type ResponseCache interface {
	Get(ctx context.Context, signature string) (*domain.CompositeResponse, error)
	Put(ctx context.Context, signature string, resp *domain.CompositeResponse) error
	Clear(ctx context.Context) error
}
