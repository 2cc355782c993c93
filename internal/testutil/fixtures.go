// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"testing"

	"go.yaml.in/yaml/v4"
)

// Matrix returns a 3x3 array of arrays holding the numbers 0 through 8.
func Matrix() []any {
	return []any{
		[]any{0.0, 1.0, 2.0},
		[]any{3.0, 4.0, 5.0},
		[]any{6.0, 7.0, 8.0},
	}
}

// Rows returns an array of seven empty arrays.
// It is wide enough for index shifting tests that address positions up to 6.
func Rows() []any {
	out := make([]any, 7)
	for i := range out {
		out[i] = []any{}
	}
	return out
}

// Objects returns an array of seven empty objects.
func Objects() []any {
	out := make([]any, 7)
	for i := range out {
		out[i] = map[string]any{}
	}
	return out
}

// Nested returns an object whose "x" member is Objects().
func Nested() map[string]any {
	return map[string]any{"x": Objects()}
}

// DecodeJSON decodes s into a generic value, failing the test on error.
func DecodeJSON(t testing.TB, s string) any {
	t.Helper()

	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		t.Fatalf("Failed to decode JSON %q: %v", s, err)
	}
	return v
}

// EncodeJSON encodes v, failing the test on error.
func EncodeJSON(t testing.TB, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode JSON: %v", err)
	}
	return data
}

// EncodeYAML encodes v as YAML, failing the test on error.
func EncodeYAML(t testing.TB, v any) []byte {
	t.Helper()

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode YAML: %v", err)
	}
	return data
}
