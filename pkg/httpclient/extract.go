package httpclient

import (
	"encoding/json"
	"errors"
	"strings"
)

const jsonContentType = "application/json"

// fallbackBody stands in for any body that is not declared or not parseable as JSON.
var fallbackBody = json.RawMessage(`{"message":null}`)

// FallbackBody returns a copy of the placeholder substituted for undecodable bodies.
func FallbackBody() json.RawMessage {
	return append(json.RawMessage(nil), fallbackBody...)
}

// extractBody returns the body when the content type declares JSON and the
// payload parses; every other case yields the fallback body.
func extractBody(contentType string, body []byte) json.RawMessage {
	if !strings.Contains(strings.ToLower(contentType), jsonContentType) {
		return FallbackBody()
	}
	if !json.Valid(body) {
		return FallbackBody()
	}
	return append(json.RawMessage(nil), body...)
}

// decodeInto maps an extracted body onto T. A mistyped nested field leaves
// that field zero and keeps the rest; a payload whose top-level shape does not
// fit T decodes as the fallback body instead.
func decodeInto[T any](raw json.RawMessage) T {
	var v T
	err := json.Unmarshal(raw, &v)
	if err == nil {
		return v
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return v
	}
	var fallback T
	_ = json.Unmarshal(fallbackBody, &fallback)
	return fallback
}
