package nexon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/mapledash/character-api/internal/api/metrics"
	"github.com/mapledash/character-api/internal/core/domain"
)

const (
	DefaultBaseURL = "https://open.api.nexon.com/maplestorytw/v1"

	apiKeyHeader   = "x-nxopen-api-key"
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Config captures the settings of the upstream client.
type Config struct {
	BaseURL string
	APIKey  string
	// Timeout bounds one attempt. Defaults to 10s.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts for transient failures
	// (transport errors, 429 and 5xx). Zero disables retries.
	MaxRetries int
	// RequestsPerSecond caps outgoing calls across the process. Zero is unlimited.
	RequestsPerSecond float64
	// HTTPClient overrides the transport; its Timeout is left as-is.
	HTTPClient *http.Client
}

// Client talks to the Nexon Open API with a single shared credential.
type Client struct {
	baseURL    string
	apiKey     string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
	log        zerolog.Logger
}

// NewClient builds a Client. A missing API key is not an error here; every
// call fails with a ConfigurationError instead so the process can still serve
// health probes.
func NewClient(cfg Config, log zerolog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	burst := 0
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
		burst = max(1, int(cfg.RequestsPerSecond))
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		http:       httpClient,
		limiter:    rate.NewLimiter(limit, burst),
		maxRetries: max(0, cfg.MaxRetries),
		log:        log,
	}
}

// Configured reports whether the client carries a credential.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Call issues GET baseURL+path with params and returns the raw JSON body.
// It returns (nil, nil) on 204 No Content and *domain.UpstreamError on any
// status outside 200-299.
func (c *Client) Call(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, &domain.ConfigurationError{
			Message: "Missing Nexon Open API key. Set NEXON_OPEN_API_KEY in your environment.",
		}
	}

	target := c.buildURL(path, params)

	op := func() (json.RawMessage, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}
		body, err := c.do(ctx, path, target)
		if err != nil && !retryable(ctx, err) {
			return nil, backoff.Permanent(err)
		}
		return body, err
	}

	return backoff.Retry(ctx, op,
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxTries(uint(c.maxRetries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			metrics.UpstreamRetriesTotal.WithLabelValues(path).Inc()
			c.log.Debug().Err(err).Str("endpoint", path).Dur("backoff", wait).Msg("retrying upstream call")
		}),
	)
}

func (c *Client) do(ctx context.Context, path, target string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(path, "error").Inc()
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()
	metrics.UpstreamRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.UpstreamError{
			Path:    path,
			Status:  resp.StatusCode,
			Details: readDetails(resp.Body),
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(body) == 0 {
		return nil, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("decode %s: invalid JSON body", path)
	}
	return json.RawMessage(body), nil
}

func (c *Client) buildURL(path string, params url.Values) string {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if v != "" {
				q.Add(k, v)
			}
		}
	}
	u := c.baseURL + path
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// readDetails decodes an error body: JSON first, then raw text, else nil.
func readDetails(r io.Reader) any {
	raw, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil || len(raw) == 0 {
		return nil
	}
	if json.Valid(raw) {
		return json.RawMessage(raw)
	}
	return string(raw)
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var ue *domain.UpstreamError
	if errors.As(err, &ue) {
		return ue.Status == http.StatusTooManyRequests || ue.Status >= 500
	}
	// Transport failures surface from http.Client.Do as *url.Error. Build and
	// decode errors are deterministic and never retried.
	var ne net.Error
	return errors.As(err, &ne)
}

func newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 2 * time.Second
	return b
}
