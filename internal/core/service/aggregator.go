package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mapledash/character-api/internal/api/metrics"
	"github.com/mapledash/character-api/internal/core/domain"
)

const defaultSectionConcurrency = 4

// SectionAggregator fetches the modules of one section concurrently and merges
// them into a single payload.
type SectionAggregator struct {
	spec        sectionSpec
	fetcher     *Fetcher
	concurrency int
	log         zerolog.Logger
}

// NewSectionAggregator returns the aggregator for section. It fails for a
// section missing from the catalog.
func NewSectionAggregator(section domain.SectionKey, fetcher *Fetcher, concurrency int, log zerolog.Logger) (*SectionAggregator, error) {
	spec, ok := sectionCatalog[section]
	if !ok {
		return nil, fmt.Errorf("no aggregator for section %q", section)
	}
	if concurrency <= 0 {
		concurrency = defaultSectionConcurrency
	}
	return &SectionAggregator{
		spec:        spec,
		fetcher:     fetcher,
		concurrency: concurrency,
		log:         log.With().Str("section", string(section)).Logger(),
	}, nil
}

// Section returns the key this aggregator serves.
func (a *SectionAggregator) Section() domain.SectionKey {
	return a.spec.Key
}

type moduleOutcome struct {
	payload json.RawMessage
	err     error
}

// Aggregate fetches the selected modules (all when only is empty). Every module
// settles before it returns. A failed required module or a configuration
// error rejects the whole section; failed optional modules are reported as section.module errors next
// to the payload of their siblings.
func (a *SectionAggregator) Aggregate(ctx context.Context, opaqueID, date string, only []domain.ModuleKey) (*domain.SectionResult, error) {
	mods := a.spec.modules(only)
	params := url.Values{"ocid": {opaqueID}}
	if date != "" {
		params.Set("date", date)
	}

	slots := make([]moduleOutcome, len(mods))

	// Goroutines only return the error of a required module or a missing
	// credential, so Wait never short-circuits optional failures.
	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, m := range mods {
		g.Go(func() error {
			if m.Required {
				payload, err := a.fetcher.FetchOptional(ctx, m.Path, params, nil)
				a.observe(m, payload, err)
				if err != nil {
					return err
				}
				slots[i] = moduleOutcome{payload: payload}
				return nil
			}

			res := a.fetcher.Fetch(ctx, m.Path, params)
			metrics.ModuleOutcomesTotal.WithLabelValues(string(a.spec.Key), string(m.Key), res.Outcome.String()).Inc()
			// A missing credential fails every call alike; it is never a module error.
			var ce *domain.ConfigurationError
			if errors.As(res.Err, &ce) {
				return ce
			}
			slots[i] = moduleOutcome{payload: res.Payload, err: res.Err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.log.Warn().Err(err).Msg("required module failed")
		return nil, err
	}

	if a.spec.Single {
		return &domain.SectionResult{Payload: slots[0].payload}, nil
	}

	merged := make(map[domain.ModuleKey]json.RawMessage, len(mods))
	result := &domain.SectionResult{}
	for i, m := range mods {
		out := slots[i]
		if out.err != nil {
			a.log.Warn().Err(out.err).Str("module", string(m.Key)).Msg("module fetch failed")
			result.Errors = append(result.Errors, domain.SectionError{
				Path:    domain.ModulePath(a.spec.Key, m.Key),
				Message: domain.MessageOf(out.err),
			})
			continue
		}
		if out.payload != nil {
			merged[m.Key] = out.payload
		}
	}

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("merge %s: %w", a.spec.Key, err)
	}
	result.Payload = payload
	return result, nil
}

func (a *SectionAggregator) observe(m moduleSpec, payload json.RawMessage, err error) {
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeFailed
	case payload == nil:
		outcome = OutcomeNotApplicable
	}
	module := string(m.Key)
	if module == "" {
		module = string(a.spec.Key)
	}
	metrics.ModuleOutcomesTotal.WithLabelValues(string(a.spec.Key), module, outcome.String()).Inc()
}
