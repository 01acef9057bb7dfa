// Package clipboard provides a clipboard adapter using wl-clipboard (Wayland) with X11 fallback.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/logging"
)

// ErrUnavailable is returned when no clipboard tool was found.
var ErrUnavailable = errors.New("no clipboard tool available (install wl-clipboard or xclip)")

// tool is one clipboard program with the arguments for each direction.
type tool struct {
	copy      string
	paste     string
	copyArgs  []string
	pasteArgs []string
}

// Wayland tools are tried first, then X11 ones when DISPLAY is set.
var (
	waylandTools = []tool{
		{copy: "wl-copy", paste: "wl-paste", pasteArgs: []string{"--no-newline"}},
	}
	x11Tools = []tool{
		{copy: "xclip", paste: "xclip", copyArgs: []string{"-selection", "clipboard"}, pasteArgs: []string{"-selection", "clipboard", "-o"}},
		{copy: "xsel", paste: "xsel", copyArgs: []string{"--clipboard", "--input"}, pasteArgs: []string{"--clipboard", "--output"}},
	}
)

// Adapter implements port.Clipboard by running a system clipboard tool.
type Adapter struct {
	copyCmd   string
	pasteCmd  string
	copyArgs  []string
	pasteArgs []string
}

var _ port.Clipboard = (*Adapter)(nil)

// New detects the clipboard tool for the current session.
func New() *Adapter {
	return detect(os.Getenv, exec.LookPath)
}

func detect(getenv func(string) string, lookPath func(string) (string, error)) *Adapter {
	var candidates []tool
	if getenv("WAYLAND_DISPLAY") != "" {
		candidates = append(candidates, waylandTools...)
	}
	if getenv("DISPLAY") != "" {
		candidates = append(candidates, x11Tools...)
	}

	for _, t := range candidates {
		copyPath, err := lookPath(t.copy)
		if err != nil {
			continue
		}
		a := &Adapter{copyCmd: copyPath, copyArgs: t.copyArgs, pasteArgs: t.pasteArgs}
		if pastePath, err := lookPath(t.paste); err == nil {
			a.pasteCmd = pastePath
		}
		return a
	}
	return &Adapter{}
}

// Available reports whether a clipboard tool was found.
func (a *Adapter) Available() bool {
	return a.copyCmd != ""
}

// WriteText copies text to the clipboard.
func (a *Adapter) WriteText(ctx context.Context, text string) error {
	log := logging.FromContext(ctx)
	if a.copyCmd == "" {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, a.copyCmd, a.copyArgs...)
	cmd.Stdin = strings.NewReader(text)
	if err := cmd.Run(); err != nil {
		log.Error().Err(err).Str("tool", a.copyCmd).Msg("clipboard write failed")
		return fmt.Errorf("clipboard write: %w", err)
	}

	log.Debug().Str("tool", a.copyCmd).Int("len", len(text)).Msg("clipboard write success")
	return nil
}

// ReadText reads text from the clipboard.
func (a *Adapter) ReadText(ctx context.Context) (string, error) {
	log := logging.FromContext(ctx)
	if a.pasteCmd == "" {
		return "", ErrUnavailable
	}

	out, err := exec.CommandContext(ctx, a.pasteCmd, a.pasteArgs...).Output()
	if err != nil {
		log.Debug().Err(err).Str("tool", a.pasteCmd).Msg("clipboard read failed (may be empty)")
		return "", fmt.Errorf("clipboard read: %w", err)
	}

	log.Debug().Str("tool", a.pasteCmd).Int("len", len(out)).Msg("clipboard read success")
	return string(out), nil
}
