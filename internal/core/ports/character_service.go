package ports

import (
	"context"

	"github.com/mapledash/character-api/internal/core/domain"
)

// CompositeQuery carries the raw request shape of a character lookup. Section
// and Module are validated by the service, not by the caller.
type CompositeQuery struct {
	CharacterName string
	Date          string // optional, YYYY-MM-DD
	Section       string // optional, one of domain.AllSections
	OpaqueID      string // optional, skips identity resolution
	Module        string // optional, only with Section == "skills"
}

// CharacterService is the single query interface the UI talks to.
type CharacterService interface {
	GetCompositeResponse(ctx context.Context, q CompositeQuery) (*domain.CompositeResponse, error)
}
