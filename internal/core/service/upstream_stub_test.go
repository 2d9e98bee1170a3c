package service

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/pkg/i18n"
)

// ---------------------------------------------------------------------------
// In-memory stub upstream
// ---------------------------------------------------------------------------

type stubReply struct {
	body   string
	status int // non-zero => UpstreamError with this status
	err    error
}

// stubUpstream answers by path. Unknown paths answer 404, which the fetcher
// treats as "not applicable". Safe for concurrent use.
type stubUpstream struct {
	mu      sync.Mutex
	replies map[string]stubReply
	calls   []string
	params  map[string]url.Values
	// every, when set, is returned by every call.
	every error
}

func newStubUpstream() *stubUpstream {
	return &stubUpstream{
		replies: map[string]stubReply{
			"/id": {body: `{"ocid":"ocid-123"}`},
		},
		params: map[string]url.Values{},
	}
}

func (s *stubUpstream) on(path, body string) *stubUpstream {
	s.replies[path] = stubReply{body: body}
	return s
}

func (s *stubUpstream) fail(path string, status int) *stubUpstream {
	s.replies[path] = stubReply{
		status: status,
		body:   `{"error":{"name":"OPENAPI00001","message":"upstream ` + path + ` failed"}}`,
	}
	return s
}

func (s *stubUpstream) Call(_ context.Context, path string, params url.Values) (json.RawMessage, error) {
	s.mu.Lock()
	s.calls = append(s.calls, path)
	s.params[path] = params
	r, ok := s.replies[path]
	every := s.every
	s.mu.Unlock()

	if every != nil {
		return nil, every
	}

	if !ok {
		return nil, &domain.UpstreamError{Path: path, Status: 404}
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.status != 0 {
		return nil, &domain.UpstreamError{Path: path, Status: r.status, Details: json.RawMessage(r.body)}
	}
	if r.body == "" {
		return nil, nil
	}
	return json.RawMessage(r.body), nil
}

// unconfigured makes every call fail the way a client without an API key does.
func (s *stubUpstream) unconfigured() *stubUpstream {
	s.every = &domain.ConfigurationError{Message: "Missing Nexon Open API key."}
	return s
}

func (s *stubUpstream) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubUpstream) called(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.calls {
		if c == path {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func newTestAssembler(up *stubUpstream) *Assembler {
	resolver := NewIdentityResolver(up, i18n.DefaultLanguage, discardLogger)
	return NewAssembler(up, resolver, 4, discardLogger)
}

func decodeModules(t interface{ Fatalf(string, ...any) }, raw json.RawMessage) map[string]json.RawMessage {
	out := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("section payload is not an object: %v (%s)", err, raw)
	}
	return out
}

func errorPaths(errs []domain.SectionError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Path.String())
	}
	return out
}
