package layoutfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/infrastructure/layoutfile"
	"github.com/bnema/dockgrid/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), zerolog.Nop())
}

const twoGroups = `{
  "grid": {
    "root": {
      "type": "branch",
      "data": [
        {"type": "leaf", "data": {"id": "1", "views": ["a", "b"], "activeView": "b"}, "size": 300},
        {"type": "leaf", "data": {"id": "2", "views": ["c"], "activeView": "c", "locked": true}, "size": 500}
      ],
      "size": 600
    },
    "width": 800,
    "height": 600,
    "orientation": "HORIZONTAL"
  },
  "panels": {
    "a": {"id": "a", "contentComponent": "editor"},
    "b": {"id": "b", "contentComponent": "editor", "title": "B"},
    "c": {"id": "c", "contentComponent": "terminal"}
  },
  "activeGroup": "2"
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRead(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid layout", func(t *testing.T) {
		layout, err := layoutfile.Read(writeFile(t, dir, "ok.json", twoGroups))
		require.NoError(t, err)
		assert.Equal(t, 2, layout.GroupCount())
		assert.Equal(t, 3, layout.PanelCount())
		assert.Equal(t, entity.GroupID("2"), layout.ActiveGroup)
		assert.Equal(t, entity.LockLocked, layout.Grid.Root.Children[1].Group.Locked)
	})

	t.Run("dangling panel reference", func(t *testing.T) {
		broken := `{"grid":{"root":{"type":"branch","data":[{"type":"leaf","data":{"id":"1","views":["x"]},"size":10}],"size":10},"width":10,"height":10,"orientation":"HORIZONTAL"},"panels":{}}`
		_, err := layoutfile.Read(writeFile(t, dir, "dangling.json", broken))
		require.Error(t, err)
		assert.ErrorIs(t, err, entity.ErrMissingReference)
		assert.Contains(t, err.Error(), "dangling.json")
	})

	t.Run("leaf root", func(t *testing.T) {
		leafRoot := `{"grid":{"root":{"type":"leaf","data":{"id":"1","views":[]},"size":10},"width":10,"height":10,"orientation":"HORIZONTAL"},"panels":{}}`
		_, err := layoutfile.Read(writeFile(t, dir, "leaf.json", leafRoot))
		assert.ErrorIs(t, err, entity.ErrInvalidLayout)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := layoutfile.Read(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestWrite_ThenRead(t *testing.T) {
	dir := t.TempDir()
	src, err := layoutfile.Read(writeFile(t, dir, "src.json", twoGroups))
	require.NoError(t, err)

	out := filepath.Join(dir, "nested", "export", "copy.json")
	require.NoError(t, layoutfile.Write(out, src))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	got, err := layoutfile.Read(out)
	require.NoError(t, err)
	assert.Equal(t, src, got)

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWrite_NilLayout(t *testing.T) {
	err := layoutfile.Write(filepath.Join(t.TempDir(), "x.json"), nil)
	assert.Error(t, err)
}

func TestValidateFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "a.json", twoGroups),
		writeFile(t, dir, "b.json", `{"grid":`),
		filepath.Join(dir, "missing.json"),
		writeFile(t, dir, "d.json", twoGroups),
	}

	results, err := layoutfile.ValidateFiles(testCtx(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, res := range results {
		assert.Equal(t, paths[i], res.Path)
	}
	assert.True(t, results[0].OK())
	assert.Equal(t, 2, results[0].Groups)
	assert.Equal(t, 3, results[0].Panels)
	assert.ErrorIs(t, results[1].Err, entity.ErrInvalidLayout)
	assert.ErrorIs(t, results[2].Err, os.ErrNotExist)
	assert.True(t, results[3].OK())
}

func TestValidateFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(testCtx())
	cancel()

	_, err := layoutfile.ValidateFiles(ctx, []string{writeFile(t, dir, "a.json", twoGroups)}, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchema(t *testing.T) {
	data, err := layoutfile.Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "dockgrid layout", doc["title"])

	defs, ok := doc["$defs"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, defs, "GridNodeState")
	require.Contains(t, defs, "GroupState")
	require.Contains(t, defs, "PanelState")

	node := defs["GridNodeState"].(map[string]any)
	assert.ElementsMatch(t, []any{"type", "data"}, node["required"])

	grid := defs["GridState"].(map[string]any)
	props := grid["properties"].(map[string]any)
	orientation := props["orientation"].(map[string]any)
	assert.ElementsMatch(t, []any{"HORIZONTAL", "VERTICAL"}, orientation["enum"])
}
