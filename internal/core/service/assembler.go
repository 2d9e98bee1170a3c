package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mapledash/character-api/internal/api/metrics"
	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
)

// AssembleOptions narrows a composite assembly.
type AssembleOptions struct {
	Date     string
	Sections []domain.SectionKey // empty selects domain.AllSections
	Modules  []domain.ModuleKey  // applies to the skills section only
	OpaqueID string              // skips identity resolution when set
}

// Assembler resolves a character once and fans out to its section aggregators.
type Assembler struct {
	resolver    ports.IdentityResolver
	aggregators map[domain.SectionKey]*SectionAggregator
	now         func() time.Time
	log         zerolog.Logger
}

// NewAssembler wires one aggregator per known section over client.
func NewAssembler(client ports.UpstreamClient, resolver ports.IdentityResolver, concurrency int, log zerolog.Logger) *Assembler {
	fetcher := NewFetcher(client)
	aggregators := make(map[domain.SectionKey]*SectionAggregator, len(domain.AllSections))
	for _, key := range domain.AllSections {
		agg, err := NewSectionAggregator(key, fetcher, concurrency, log)
		if err != nil {
			panic(err)
		}
		aggregators[key] = agg
	}
	return &Assembler{
		resolver:    resolver,
		aggregators: aggregators,
		now:         time.Now,
		log:         log,
	}
}

// WithClock replaces the clock used for FetchedAt. Intended for tests.
func (a *Assembler) WithClock(now func() time.Time) *Assembler {
	a.now = now
	return a
}

type sectionOutcome struct {
	result *domain.SectionResult
	err    error
}

// Assemble builds the composite response for characterName.
//
// Only identity resolution and a missing credential are hard failures. Every
// section settles independently: a rejected section contributes one error at
// its bare key and never affects its siblings.
func (a *Assembler) Assemble(ctx context.Context, characterName string, opts AssembleOptions) (*domain.CompositeResponse, error) {
	start := time.Now()
	defer func() {
		metrics.AssemblyDuration.Observe(time.Since(start).Seconds())
	}()

	identity := domain.CharacterIdentity{Name: characterName, OpaqueID: opts.OpaqueID}
	if identity.OpaqueID == "" {
		id, err := a.resolver.Resolve(ctx, characterName)
		if err != nil {
			return nil, err
		}
		identity.OpaqueID = id
	}

	sections := opts.Sections
	if len(sections) == 0 {
		sections = domain.AllSections
	}

	slots := make([]sectionOutcome, len(sections))

	var g errgroup.Group
	for i, key := range sections {
		agg, ok := a.aggregators[key]
		if !ok {
			slots[i] = sectionOutcome{err: fmt.Errorf("unknown section %q", key)}
			continue
		}
		var only []domain.ModuleKey
		if key == domain.SectionSkills {
			only = opts.Modules
		}
		g.Go(func() error {
			res, err := agg.Aggregate(ctx, identity.OpaqueID, opts.Date, only)
			slots[i] = sectionOutcome{result: res, err: err}
			return nil
		})
	}
	_ = g.Wait()

	resp := &domain.CompositeResponse{
		CharacterName: identity.Name,
		OpaqueID:      identity.OpaqueID,
		RequestedDate: opts.Date,
		Sections:      make(map[domain.SectionKey]json.RawMessage, len(sections)),
		Errors:        []domain.SectionError{},
	}

	var moduleErrors []domain.SectionError
	for i, key := range sections {
		out := slots[i]
		if out.err != nil {
			var ce *domain.ConfigurationError
			if errors.As(out.err, &ce) {
				return nil, ce
			}
			metrics.SectionFailuresTotal.WithLabelValues(string(key)).Inc()
			resp.Errors = append(resp.Errors, domain.SectionError{
				Path:    domain.SectionPath(key),
				Message: domain.MessageOf(out.err),
			})
			continue
		}
		if out.result.Payload != nil {
			resp.Sections[key] = out.result.Payload
		}
		moduleErrors = append(moduleErrors, out.result.Errors...)
	}
	resp.Errors = append(resp.Errors, moduleErrors...)
	resp.FetchedAt = a.now().UTC()

	a.log.Info().
		Str("character", identity.Name).
		Str("ocid", identity.OpaqueID).
		Int("sections", len(resp.Sections)).
		Int("errors", len(resp.Errors)).
		Dur("elapsed", time.Since(start)).
		Msg("composite assembled")

	return resp, nil
}
