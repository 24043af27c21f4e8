package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSearchCodeArgsRequiresQuery(t *testing.T) {
	_, err := parseSearchCodeArgs(map[string]interface{}{})
	assert.Error(t, err)
}

func TestParseSearchCodeArgsDefaultsTopK(t *testing.T) {
	a, err := parseSearchCodeArgs(map[string]interface{}{"query": "parse config"})
	require.NoError(t, err)
	assert.Equal(t, "parse config", a.Query)
	assert.Equal(t, 5, a.TopK)
	assert.False(t, a.Hybrid)
}

func TestParseSearchCodeArgsReadsAllFields(t *testing.T) {
	raw := map[string]interface{}{
		"query":       "parse config",
		"top_k":       float64(10),
		"filter":      "code",
		"min_score":   float64(0.5),
		"type":        "function",
		"param_name":  "path",
		"param_type":  "string",
		"return_type": "bool",
		"hybrid":      true,
	}
	a, err := parseSearchCodeArgs(raw)
	require.NoError(t, err)
	assert.Equal(t, 10, a.TopK)
	assert.Equal(t, "code", a.Filter)
	assert.InDelta(t, 0.5, a.MinScore, 1e-6)
	assert.Equal(t, "function", a.Type)
	assert.Equal(t, "path", a.ParamName)
	assert.Equal(t, "string", a.ParamType)
	assert.Equal(t, "bool", a.ReturnType)
	assert.True(t, a.Hybrid)
}
