package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/mapledash/character-api/internal/api/handler"
	"github.com/mapledash/character-api/internal/api/middleware"
	"github.com/mapledash/character-api/internal/core/domain"
	"github.com/mapledash/character-api/internal/core/ports"
	"github.com/mapledash/character-api/internal/pkg/i18n"
)

type stubCharacterService struct {
	resp *domain.CompositeResponse
	err  error
}

func (s *stubCharacterService) GetCompositeResponse(context.Context, ports.CompositeQuery) (*domain.CompositeResponse, error) {
	return s.resp, s.err
}

func newTestRouter(svc ports.CharacterService) *echo.Echo {
	return newTestRouterWithLimiter(svc, nil)
}

func newTestRouterWithLimiter(svc ports.CharacterService, limiter *middleware.RateLimiter) *echo.Echo {
	reg := prometheus.NewRegistry()
	return NewRouter(RouterConfig{
		Characters: svc,
		Checks: map[string]handler.ReadinessCheck{
			"nexon": func(context.Context) error { return nil },
		},
		Locale:      i18n.DefaultLanguage,
		Log:         zerolog.Nop(),
		RateLimiter: limiter,
		Registerer:  reg,
		Gatherer:    reg,
	})
}

func do(e *echo.Echo, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp struct {
		Error errorBody `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v (%s)", err, rec.Body.String())
	}
	return resp.Error
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		header      map[string]string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         &domain.ValidationError{Field: "section", Message: "Unknown section \"guild\"."},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Unknown section \"guild\".",
		},
		{
			name:        "not found default locale",
			err:         &domain.NotFoundError{CharacterName: "Ghost"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "角色「Ghost」未找到，請確認角色名稱是否正確。",
		},
		{
			name:        "not found english",
			err:         &domain.NotFoundError{CharacterName: "Ghost"},
			header:      map[string]string{"Accept-Language": "en-US,en;q=0.9"},
			wantStatus:  http.StatusNotFound,
			wantMessage: "Character \"Ghost\" was not found. Check that the name is spelled exactly as in game.",
		},
		{
			name: "upstream passthrough",
			err: &domain.UpstreamError{
				Path:    "/id",
				Status:  http.StatusBadRequest,
				Details: json.RawMessage(`{"error":{"name":"OPENAPI00004","message":"Please input valid parameter"}}`),
			},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Please input valid parameter",
		},
		{
			name:        "configuration",
			err:         &domain.ConfigurationError{Message: "Missing Nexon Open API key."},
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Missing Nexon Open API key.",
		},
		{
			name:        "unexpected",
			err:         errors.New("boom"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Failed to fetch character data.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestRouter(&stubCharacterService{err: tc.err})
			rec := do(e, "/api/maplestory?characterName=Ghost", tc.header)

			if rec.Code != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, rec.Code)
			}
			body := decodeError(t, rec)
			if body.Status != tc.wantStatus {
				t.Errorf("expected body status %d, got %d", tc.wantStatus, body.Status)
			}
			if body.Message != tc.wantMessage {
				t.Errorf("expected message %q, got %q", tc.wantMessage, body.Message)
			}
		})
	}
}

func TestRouter_UpstreamDetailsAreForwarded(t *testing.T) {
	e := newTestRouter(&stubCharacterService{err: &domain.UpstreamError{
		Path:    "/id",
		Status:  http.StatusTooManyRequests,
		Details: json.RawMessage(`{"error":{"name":"OPENAPI00007"}}`),
	}})
	rec := do(e, "/api/maplestory?characterName=Alice", nil)

	if !strings.Contains(rec.Body.String(), `"details":{"error":{"name":"OPENAPI00007"}}`) {
		t.Fatalf("expected upstream details in body, got %s", rec.Body.String())
	}
}

func TestRouter_InvalidDate(t *testing.T) {
	e := newTestRouter(&stubCharacterService{})
	rec := do(e, "/api/maplestory?characterName=Alice&date=yesterday", nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if body := decodeError(t, rec); !strings.Contains(body.Message, "date") {
		t.Fatalf("expected date message, got %q", body.Message)
	}
}

func TestRouter_Success(t *testing.T) {
	e := newTestRouter(&stubCharacterService{resp: &domain.CompositeResponse{
		CharacterName: "Alice",
		Sections:      map[domain.SectionKey]json.RawMessage{},
		Errors:        []domain.SectionError{},
	}})
	rec := do(e, "/api/maplestory?characterName=Alice", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Cache") != "MISS" {
		t.Errorf("expected X-Cache MISS, got %q", rec.Header().Get("X-Cache"))
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("expected a request id")
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	e := newTestRouter(&stubCharacterService{})

	for _, path := range []string{"/health", "/health/ready", "/metrics"} {
		if rec := do(e, path, nil); rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}

	rec := do(e, "/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Status != http.StatusNotFound {
		t.Fatalf("expected enveloped 404, got %+v", body)
	}
}

func TestRouter_RateLimitIgnoresForwardingHeaders(t *testing.T) {
	svc := &stubCharacterService{resp: &domain.CompositeResponse{
		Sections: map[domain.SectionKey]json.RawMessage{},
		Errors:   []domain.SectionError{},
	}}
	e := newTestRouterWithLimiter(svc, middleware.NewRateLimiter(0.001, 1, zerolog.Nop()))

	first := do(e, "/api/maplestory?characterName=Alice", map[string]string{"X-Forwarded-For": "203.0.113.1"})
	if first.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", first.Code)
	}

	spoofed := do(e, "/api/maplestory?characterName=Alice", map[string]string{
		"X-Forwarded-For": "203.0.113.2",
		"X-Real-IP":       "203.0.113.3",
	})
	if spoofed.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 for the same peer, got %d", spoofed.Code)
	}
}
