package cmd

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockgrid/internal/cli/styles"
)

func TestLastLines(t *testing.T) {
	input := "one\ntwo\nthree\nfour\n"

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"fewer than available", 2, []string{"three", "four"}},
		{"exactly available", 4, []string{"one", "two", "three", "four"}},
		{"more than available", 10, []string{"one", "two", "three", "four"}},
		{"zero", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lastLines(strings.NewReader(input), tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFollowLines_EmitsCompleteLinesUntilCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	ctx, cancel := context.WithCancel(context.Background())

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- followLines(ctx, pr, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	_, err := pw.Write([]byte("first\nsec"))
	require.NoError(t, err)
	_, err = pw.Write([]byte("ond\n"))
	require.NoError(t, err)
	require.NoError(t, pw.Close())

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("followLines did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestColorizeLogLine(t *testing.T) {
	theme := styles.NewTheme()

	out := colorizeLogLine(`{"level":"info","time":"2026-01-02T15:04:05Z","component":"cli","message":"layout saved"}`, theme)
	assert.Contains(t, out, "15:04:05")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "[cli]")
	assert.Contains(t, out, "layout saved")

	assert.Equal(t, "plain text", colorizeLogLine("plain text", theme))
	assert.Contains(t, colorizeLogLine("12:00:00 ERR something broke", theme), "something broke")
}
