package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mapledash/character-api/internal/api/metrics"
	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
	"github.com/mapledash/character-api/internal/pkg/i18n"
)

// CharacterService validates queries, consults the response cache and drives
// the assembler on a miss.
type CharacterService struct {
	assembler *Assembler
	cache     ports.ResponseCache
	lang      language.Tag
	log       zerolog.Logger
}

// NewCharacterService returns a CharacterService. cache may be nil.
func NewCharacterService(assembler *Assembler, cache ports.ResponseCache, lang language.Tag, log zerolog.Logger) *CharacterService {
	return &CharacterService{assembler: assembler, cache: cache, lang: lang, log: log}
}

// GetCompositeResponse implements ports.CharacterService.
func (s *CharacterService) GetCompositeResponse(ctx context.Context, q ports.CompositeQuery) (*domain.CompositeResponse, error) {
	q.CharacterName = strings.TrimSpace(q.CharacterName)
	opts, err := s.validate(q)
	if err != nil {
		return nil, err
	}

	sig := Signature(q)

	// 1. Cache lookup. A failing cache counts as a miss.
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, sig)
		switch {
		case err != nil:
			metrics.CacheLookupsTotal.WithLabelValues("error").Inc()
			s.log.Warn().Err(err).Str("character", q.CharacterName).Msg("cache lookup failed, fetching anyway")
		case cached != nil:
			metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("character", q.CharacterName).Msg("cache hit")
			out := cached.Clone()
			out.Cached = true
			return out, nil
		default:
			metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	// 2. Assemble.
	resp, err := s.assembler.Assemble(ctx, q.CharacterName, opts)
	if err != nil {
		return nil, err
	}

	// 3. Store (non-fatal on failure).
	if s.cache != nil {
		if err := s.cache.Put(ctx, sig, resp); err != nil {
			s.log.Warn().Err(err).Str("character", q.CharacterName).Msg("failed to store composite response")
		}
	}

	return resp.Clone(), nil
}

// validate checks the query shape before any network activity.
func (s *CharacterService) validate(q ports.CompositeQuery) (AssembleOptions, error) {
	opts := AssembleOptions{Date: q.Date, OpaqueID: q.OpaqueID}

	if q.CharacterName == "" {
		return opts, &domain.ValidationError{
			Field:   "characterName",
			Message: i18n.Sprintf(s.lang, i18n.MissingNameKey),
		}
	}

	if q.Section != "" {
		section, ok := domain.ParseSectionKey(q.Section)
		if !ok {
			return opts, &domain.ValidationError{
				Field:   "section",
				Message: i18n.Sprintf(s.lang, i18n.UnknownSectionKey, q.Section),
			}
		}
		opts.Sections = []domain.SectionKey{section}
	}

	if q.Module != "" {
		if q.Section != string(domain.SectionSkills) {
			return opts, &domain.ValidationError{
				Field:   "module",
				Message: i18n.Sprintf(s.lang, i18n.ModuleSectionKey),
			}
		}
		module, ok := domain.ParseSkillModule(q.Module)
		if !ok {
			return opts, &domain.ValidationError{
				Field:   "module",
				Message: i18n.Sprintf(s.lang, i18n.UnknownModuleKey, q.Module),
			}
		}
		opts.Modules = []domain.ModuleKey{module}
	}

	return opts, nil
}

// Signature encodes the request shape as the ordered tuple
// (characterName, date, section, opaqueId, module) with null for unset fields.
func Signature(q ports.CompositeQuery) string {
	b, _ := json.Marshal([]*string{
		&q.CharacterName,
		nullable(q.Date),
		nullable(q.Section),
		nullable(q.OpaqueID),
		nullable(q.Module),
	})
	return string(b)
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
