package backend

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/hospitalcms/portal/internal/core/domain"
)

// failure is a decode problem worded for the end user.
type failure string

func (f failure) Error() string { return string(f) }

const (
	errUnexpectedResponse failure = "Unexpected response from server."
	errMissingToken       failure = "Login failed: missing token."
)

// shape is the discriminant of a list response.
type shape int

const (
	shapeUnknown shape = iota
	shapeBare          // [ ... ]
	shapeWrapped       // { "<field>": [ ... ] }
)

// classify works out which envelope raw uses for field and returns the array bytes.
func classify(raw []byte, fields map[string]json.RawMessage, field string) (shape, json.RawMessage) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return shapeBare, trimmed
	}
	if v, ok := fields[field]; ok {
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '[' {
			return shapeWrapped, v
		}
	}
	return shapeUnknown, nil
}

// decodeList normalizes both envelopes into one slice. Unknown shapes and
// undecodable items yield an empty, non-nil slice.
func decodeList[T any](field string) func(response) ([]T, error) {
	return func(r response) ([]T, error) {
		kind, arr := classify(r.raw, r.fields, field)
		if kind == shapeUnknown {
			return []T{}, nil
		}
		var out []T
		if err := json.Unmarshal(arr, &out); err != nil || out == nil {
			return []T{}, nil
		}
		return out, nil
	}
}

// decodeRecord reads the object stored under field. A 2xx without it is
// reported as an unexpected response.
func decodeRecord[T any](field string) func(response) (*T, error) {
	return func(r response) (*T, error) {
		v, ok := r.fields[field]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return nil, errUnexpectedResponse
		}
		out := new(T)
		if err := json.Unmarshal(v, out); err != nil {
			return nil, errUnexpectedResponse
		}
		return out, nil
	}
}

// decodeCredential requires a token in a successful login response.
func decodeCredential(r response) (*domain.Credential, error) {
	token := extractToken(r.fields)
	if token == "" {
		return nil, errMissingToken
	}
	return &domain.Credential{Token: token}, nil
}

// parseObject reads a JSON object body. Anything else parses as empty.
func parseObject(raw []byte) map[string]json.RawMessage {
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return map[string]json.RawMessage{}
	}
	return fields
}

func stringField(fields map[string]json.RawMessage, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// extractToken finds the session token in a login response.
func extractToken(fields map[string]json.RawMessage) string {
	for _, key := range []string{"token", "accessToken", "jwt"} {
		if s := stringField(fields, key); s != "" {
			return s
		}
	}
	if data, ok := fields["data"]; ok {
		return stringField(parseObject(data), "token")
	}
	return ""
}
