package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortTOMLTables(t *testing.T) {
	input := `title = "x"

[logging]
  level = "info"

[layout]
  width = 10

  [layout.floating]
    left = 1
`
	want := `title = "x"

[layout]
  width = 10

  [layout.floating]
    left = 1

[logging]
  level = "info"
`
	assert.Equal(t, want, sortTOMLTables(input))
}

func TestSortTOMLTables_Empty(t *testing.T) {
	assert.Equal(t, "", sortTOMLTables(""))
}

func TestWriteConfigOrdered(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, WriteConfigOrdered(DefaultConfig(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	order := []string{"[components]", "[database]", "[layout]", "[layout.floating]", "[logging]"}
	last := -1
	for _, header := range order {
		idx := strings.Index(content, header)
		require.GreaterOrEqual(t, idx, 0, "missing %s", header)
		assert.Greater(t, idx, last, "%s out of order", header)
		last = idx
	}
	assert.Contains(t, content, "remove_empty_group = true")
}

func TestWriteConfigOrdered_Nil(t *testing.T) {
	assert.Error(t, WriteConfigOrdered(nil, filepath.Join(t.TempDir(), "config.toml")))
}
