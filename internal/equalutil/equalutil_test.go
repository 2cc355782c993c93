package equalutil_test

import (
	"encoding/json"
	"testing"

	"github.com/erraggy/otpatch/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

func TestJSONEqual(t *testing.T) {
	tests := []struct {
		name string
		a    any
		b    any
		want bool
	}{
		{name: "both nil", a: nil, b: nil, want: true},
		{name: "nil vs zero", a: nil, b: 0, want: false},
		{name: "same string", a: "x", b: "x", want: true},
		{name: "different string", a: "x", b: "y", want: false},
		{name: "bool", a: true, b: true, want: true},
		{name: "bool vs string", a: true, b: "true", want: false},
		{name: "int vs float", a: 1, b: 1.0, want: true},
		{name: "int64 vs json.Number", a: int64(3), b: json.Number("3"), want: true},
		{name: "different numbers", a: 1, b: 2, want: false},
		{name: "number vs string", a: 1, b: "1", want: false},
		{
			name: "nested maps",
			a:    map[string]any{"a": []any{1, map[string]any{"b": "c"}}},
			b:    map[string]any{"a": []any{1.0, map[string]any{"b": "c"}}},
			want: true,
		},
		{
			name: "missing key",
			a:    map[string]any{"a": nil},
			b:    map[string]any{"b": nil},
			want: false,
		},
		{
			name: "array order matters",
			a:    []any{1, 2},
			b:    []any{2, 1},
			want: false,
		},
		{
			name: "empty map vs empty array",
			a:    map[string]any{},
			b:    []any{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.JSONEqual(tt.a, tt.b))
			assert.Equal(t, tt.want, equalutil.JSONEqual(tt.b, tt.a))
		})
	}
}

func TestToFloat(t *testing.T) {
	f, ok := equalutil.ToFloat(uint8(7))
	assert.True(t, ok)
	assert.Equal(t, 7.0, f)

	_, ok = equalutil.ToFloat(json.Number("nope"))
	assert.False(t, ok)

	_, ok = equalutil.ToFloat("7")
	assert.False(t, ok)
}

func TestDeepCopy(t *testing.T) {
	original := map[string]any{
		"list": []any{map[string]any{"k": "v"}},
		"n":    1,
	}

	copied := equalutil.DeepCopy(original).(map[string]any)
	assert.True(t, equalutil.JSONEqual(original, copied))

	copied["list"].([]any)[0].(map[string]any)["k"] = "changed"
	assert.Equal(t, "v", original["list"].([]any)[0].(map[string]any)["k"])

	assert.Equal(t, "scalar", equalutil.DeepCopy("scalar"))
	assert.Nil(t, equalutil.DeepCopy(nil))
}
