package domain

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ConfigurationError reports a missing or unusable service setting, such as an
// absent upstream credential. It is never retried.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// NotFoundError means the character name does not resolve to an opaque id.
// Message is already localized for the end user.
type NotFoundError struct {
	CharacterName string
	Message       string
}

func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("character %q not found", e.CharacterName)
}

// UpstreamError is a non-2xx answer from the upstream API.
// Details holds the decoded error body: json.RawMessage when the body was JSON,
// a string when it was plain text, nil when it was empty or unreadable.
type UpstreamError struct {
	Path    string
	Status  int
	Details any
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Request to %s failed with status %d", e.Path, e.Status)
}

// ValidationError is a malformed request rejected before any network activity.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// MessageOf returns the user-facing message for err. Upstream errors prefer the
// error.message field of a JSON error body.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		if raw, ok := ue.Details.(json.RawMessage); ok {
			if msg := gjson.GetBytes(raw, "error.message"); msg.Type == gjson.String && msg.Str != "" {
				return msg.Str
			}
		}
		return ue.Error()
	}

	return err.Error()
}
