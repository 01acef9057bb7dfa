package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

func newTestManager(t *testing.T) (*Manager, string) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	dir := t.TempDir()
	mgr, err := NewManagerAt(dir)
	require.NoError(t, err)
	return mgr, dir
}

func TestSetLayoutDefaults(t *testing.T) {
	mgr := &Manager{viper: viper.New()}
	mgr.setDefaults()

	assert.Equal(t, "horizontal", mgr.viper.GetString("layout.orientation"))
	assert.True(t, mgr.viper.GetBool("layout.remove_empty_group"))
	assert.Equal(t, 20, mgr.viper.GetInt("layout.drop_threshold_percent"))
	assert.Equal(t, 300, mgr.viper.GetInt("layout.floating.width"))
}

func TestManager_LoadCreatesDefaultFile(t *testing.T) {
	mgr, dir := newTestManager(t)

	require.NoError(t, mgr.Load())

	assert.FileExists(t, filepath.Join(dir, "config.toml"))
	assert.FileExists(t, filepath.Join(dir, "config.schema.json"))

	cfg := mgr.Get()
	assert.Equal(t, "horizontal", cfg.Layout.Orientation)
	assert.Equal(t, 1280, cfg.Layout.Width)
	assert.True(t, cfg.Layout.RemoveEmptyGroup)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, entity.OrientationHorizontal, cfg.RootOrientation())
}

func TestManager_LoadReadsFileAndEnv(t *testing.T) {
	mgr, dir := newTestManager(t)
	content := `
[layout]
orientation = "VERTICAL"
width = 1024

[components]
registered = ["editor", " terminal "]
default = "editor"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), filePerm))
	t.Setenv("DOCKGRID_LAYOUT_HEIGHT", "640")
	t.Setenv("DOCKGRID_LOG_LEVEL", "debug")

	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	assert.Equal(t, "vertical", cfg.Layout.Orientation)
	assert.Equal(t, entity.OrientationVertical, cfg.RootOrientation())
	assert.Equal(t, 1024, cfg.Layout.Width)
	assert.Equal(t, 640, cfg.Layout.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"editor", "terminal"}, cfg.Components.Registered)
	assert.True(t, cfg.IsRegistered("Terminal"))
	assert.False(t, cfg.IsRegistered("browser"))
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	mgr, dir := newTestManager(t)
	content := `
[layout]
drop_threshold_percent = 90
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), filePerm))

	err := mgr.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "layout.drop_threshold_percent")
}

func TestManager_SaveRoundTrip(t *testing.T) {
	mgr, dir := newTestManager(t)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Layout.Width = 1920
	cfg.Components.Registered = []string{"editor"}
	require.NoError(t, mgr.Save(cfg))

	reloaded, err := NewManagerAt(dir)
	require.NoError(t, err)
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 1920, reloaded.Get().Layout.Width)
	assert.Equal(t, []string{"editor"}, reloaded.Get().Components.Registered)
}

func TestManager_SaveRejectsInvalidConfig(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Logging.Level = "loud"

	err := mgr.Save(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Equal(t, "info", mgr.Get().Logging.Level)
}

func TestManager_GetReturnsCopy(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load())

	cfg := mgr.Get()
	cfg.Layout.Width = 1
	cfg.Components.Registered = append(cfg.Components.Registered, "x")

	assert.Equal(t, 1280, mgr.Get().Layout.Width)
	assert.Empty(t, mgr.Get().Components.Registered)
}

func TestManager_ReloadNotifiesCallbacks(t *testing.T) {
	mgr, dir := newTestManager(t)
	require.NoError(t, mgr.Load())

	var got []*Config
	mgr.OnConfigChange(func(c *Config) { got = append(got, c) })

	content := "[layout]\nwidth = 700\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), filePerm))
	require.NoError(t, mgr.Reload())

	require.Len(t, got, 1)
	assert.Equal(t, 700, got[0].Layout.Width)
	assert.Equal(t, 700, mgr.Get().Layout.Width)
}

func TestManager_WatchRequiresLoad(t *testing.T) {
	mgr, _ := newTestManager(t)

	assert.Error(t, mgr.Watch())
}

func TestNormalizeConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Layout.Orientation = " Vertical "
	cfg.Logging.Level = "DEBUG"
	cfg.Logging.Format = "text"
	cfg.Components.Registered = []string{"", " editor "}

	normalizeConfig(cfg)

	assert.Equal(t, "vertical", cfg.Layout.Orientation)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, []string{"editor"}, cfg.Components.Registered)
}
