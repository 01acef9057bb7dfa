package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogRotator_WritesAndRotates(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	chunk := []byte(strings.Repeat("x", 600*1024))
	for range 3 {
		n, err := r.Write(chunk)
		require.NoError(t, err)
		assert.Equal(t, len(chunk), n)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var backups int
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "dockgrid.log.") {
			backups++
		}
	}
	assert.Equal(t, 1, backups, "older backups beyond MaxBackups are removed")

	info, err := os.Stat(filepath.Join(dir, "dockgrid.log"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), info.Size())
}

func TestLogRotator_CompressesBackups(t *testing.T) {
	dir := t.TempDir()
	r, err := NewLogRotator(RotatorConfig{Dir: dir, FileName: "test.log", MaxSizeMB: 1, Compress: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })

	chunk := []byte(strings.Repeat("y", 700*1024))
	_, err = r.Write(chunk)
	require.NoError(t, err)
	_, err = r.Write(chunk)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "test.log.*.gz"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
	assert.Equal(t, filepath.Join(dir, "test.log"), r.Path())
}
