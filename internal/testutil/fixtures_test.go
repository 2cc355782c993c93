package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v4"
)

func TestMatrix(t *testing.T) {
	m := Matrix()
	require.Len(t, m, 3)
	for i, row := range m {
		r, ok := row.([]any)
		require.True(t, ok, "row %d should be an array", i)
		assert.Equal(t, []any{float64(3 * i), float64(3*i + 1), float64(3*i + 2)}, r)
	}
}

// TestFixturesAreFresh verifies that each call returns independent values.
func TestFixturesAreFresh(t *testing.T) {
	a, b := Rows(), Rows()
	a[0] = "changed"
	assert.Equal(t, []any{}, b[0])

	o := Objects()
	o[1].(map[string]any)["k"] = true
	assert.Empty(t, Objects()[1])

	n := Nested()
	require.Contains(t, n, "x")
	assert.Len(t, n["x"], 7)
}

func TestDecodeJSON(t *testing.T) {
	v := DecodeJSON(t, `{"a":[1,"b",null]}`)
	assert.Equal(t, map[string]any{"a": []any{1.0, "b", nil}}, v)
}

func TestEncodeJSON(t *testing.T) {
	assert.JSONEq(t, `{"x":[{},{}]}`, string(EncodeJSON(t, map[string]any{"x": Objects()[:2]})))
}

func TestEncodeYAML(t *testing.T) {
	data := EncodeYAML(t, map[string]any{"a": []any{"b"}})

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, map[string]any{"a": []any{"b"}}, back)
}
