package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
)

// Outcome tags the result of one module fetch.
type Outcome int

const (
	// OutcomeOK carries a payload.
	OutcomeOK Outcome = iota
	// OutcomeNotApplicable means the feature does not exist for the character
	// (no content, 404). It is not an error.
	OutcomeNotApplicable
	// OutcomeFailed carries the failure in Err.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotApplicable:
		return "not_applicable"
	default:
		return "failed"
	}
}

// FetchResult is Ok(payload) | NotApplicable | Failed(err).
type FetchResult struct {
	Outcome Outcome
	Payload json.RawMessage
	Err     error
}

// Fetcher wraps upstream calls for attributes that are optional per character.
type Fetcher struct {
	client ports.UpstreamClient
}

func NewFetcher(client ports.UpstreamClient) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch calls path and classifies the outcome.
func (f *Fetcher) Fetch(ctx context.Context, path string, params url.Values) FetchResult {
	raw, err := f.client.Call(ctx, path, params)
	if err != nil {
		if isAbsent(err) {
			return FetchResult{Outcome: OutcomeNotApplicable}
		}
		return FetchResult{Outcome: OutcomeFailed, Err: err}
	}
	if len(raw) == 0 || string(raw) == "null" {
		return FetchResult{Outcome: OutcomeNotApplicable}
	}
	return FetchResult{Outcome: OutcomeOK, Payload: raw}
}

// FetchOptional returns the payload, or nil when the feature is absent.
// Other failures are handed to onError and nil is returned; without onError
// the failure is returned to the caller.
func (f *Fetcher) FetchOptional(ctx context.Context, path string, params url.Values, onError func(error)) (json.RawMessage, error) {
	res := f.Fetch(ctx, path, params)
	switch res.Outcome {
	case OutcomeOK:
		return res.Payload, nil
	case OutcomeNotApplicable:
		return nil, nil
	}
	if onError == nil {
		return nil, res.Err
	}
	onError(res.Err)
	return nil, nil
}

func isAbsent(err error) bool {
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	return ue.Status == http.StatusNoContent || ue.Status == http.StatusNotFound
}
