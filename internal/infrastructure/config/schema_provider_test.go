package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaProvider_GetSchema(t *testing.T) {
	keys := NewSchemaProvider().GetSchema()

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		assert.False(t, seen[k.Key], "duplicate key %s", k.Key)
		seen[k.Key] = true
		assert.NotEmpty(t, k.Section, k.Key)
		assert.NotEmpty(t, k.Description, k.Key)
	}
	for _, want := range []string{
		"layout.orientation",
		"layout.drop_threshold_percent",
		"layout.floating.width",
		"components.registered",
		"logging.level",
		"database.path",
	} {
		assert.True(t, seen[want], "missing %s", want)
	}
}

func TestSchema_IsValidJSON(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "dockgrid configuration", doc["title"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "layout")
	assert.Contains(t, props, "logging")
}
