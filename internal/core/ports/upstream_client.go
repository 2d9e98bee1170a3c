package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// UpstreamClient issues a single authenticated GET against the upstream API.
// A nil payload with a nil error means the upstream answered without content.
type UpstreamClient interface {
	Call(ctx context.Context, path string, params url.Values) (json.RawMessage, error)
}

// GetJSON calls path and decodes the payload into T. A no-content answer
// yields the zero value of T.
func GetJSON[T any](ctx context.Context, c UpstreamClient, path string, params url.Values) (T, error) {
	var out T
	raw, err := c.Call(ctx, path, params)
	if err != nil {
		return out, err
	}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s: %w", path, err)
	}
	return out, nil
}
