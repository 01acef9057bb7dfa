package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockgrid/internal/logging"
)

func fakeEnv(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func fakeLookPath(installed ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, i := range installed {
			if i == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		installed []string
		wantCopy  string
		wantPaste string
		wantArgs  []string
	}{
		{
			name:      "wayland",
			env:       map[string]string{"WAYLAND_DISPLAY": "wayland-0"},
			installed: []string{"wl-copy", "wl-paste", "xclip"},
			wantCopy:  "/usr/bin/wl-copy",
			wantPaste: "/usr/bin/wl-paste",
		},
		{
			name:      "wayland without wl-clipboard falls back to x11",
			env:       map[string]string{"WAYLAND_DISPLAY": "wayland-0", "DISPLAY": ":0"},
			installed: []string{"xclip"},
			wantCopy:  "/usr/bin/xclip",
			wantPaste: "/usr/bin/xclip",
			wantArgs:  []string{"-selection", "clipboard"},
		},
		{
			name:      "x11 with xsel only",
			env:       map[string]string{"DISPLAY": ":0"},
			installed: []string{"xsel"},
			wantCopy:  "/usr/bin/xsel",
			wantPaste: "/usr/bin/xsel",
			wantArgs:  []string{"--clipboard", "--input"},
		},
		{
			name:      "no display",
			installed: []string{"wl-copy", "xclip"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := detect(fakeEnv(tt.env), fakeLookPath(tt.installed...))

			assert.Equal(t, tt.wantCopy, a.copyCmd)
			assert.Equal(t, tt.wantPaste, a.pasteCmd)
			assert.Equal(t, tt.wantArgs, a.copyArgs)
			assert.Equal(t, tt.wantCopy != "", a.Available())
		})
	}
}

func TestAdapter_Unavailable(t *testing.T) {
	ctx := logging.WithContext(context.Background(), zerolog.Nop())
	a := &Adapter{}

	assert.ErrorIs(t, a.WriteText(ctx, "x"), ErrUnavailable)
	_, err := a.ReadText(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
}
