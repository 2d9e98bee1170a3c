package ports

import "context"

// IdentityResolver maps a character name to the upstream opaque id.
type IdentityResolver interface {
	Resolve(ctx context.Context, characterName string) (string, error)
}
