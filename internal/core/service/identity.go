package service

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
	"github.com/mapledash/character-api/internal/pkg/i18n"
)

const identityPath = "/id"

type idResponse struct {
	OCID string `json:"ocid"`
}

// IdentityResolver resolves character names through the upstream /id endpoint.
type IdentityResolver struct {
	client ports.UpstreamClient
	lang   language.Tag
	log    zerolog.Logger
}

// NewIdentityResolver returns a resolver whose not-found messages use lang.
func NewIdentityResolver(client ports.UpstreamClient, lang language.Tag, log zerolog.Logger) *IdentityResolver {
	return &IdentityResolver{client: client, lang: lang, log: log}
}

// Resolve returns the opaque id of characterName. A response without an id is
// a *domain.NotFoundError; transport and HTTP failures are returned unchanged.
func (r *IdentityResolver) Resolve(ctx context.Context, characterName string) (string, error) {
	data, err := ports.GetJSON[idResponse](ctx, r.client, identityPath, url.Values{
		"character_name": {characterName},
	})
	if err != nil {
		return "", err
	}

	if data.OCID == "" {
		r.log.Debug().Str("character", characterName).Msg("character not found")
		return "", &domain.NotFoundError{
			CharacterName: characterName,
			Message:       i18n.Sprintf(r.lang, i18n.CharacterNotFoundKey, characterName),
		}
	}

	return data.OCID, nil
}
