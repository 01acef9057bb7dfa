package xdg

import (
	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
)

// Adapter implements port.XDGPaths using config.GetXDGDirs().
type Adapter struct{}

// New creates a new XDG paths adapter.
func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) ConfigDir() (string, error) {
	return config.GetConfigDir()
}

func (a *Adapter) DataDir() (string, error) {
	return config.GetDataDir()
}

func (a *Adapter) StateDir() (string, error) {
	return config.GetStateDir()
}

func (a *Adapter) CacheDir() (string, error) {
	dirs, err := config.GetXDGDirs()
	if err != nil {
		return "", err
	}
	return dirs.CacheHome, nil
}

func (a *Adapter) ManDir() (string, error) {
	return config.GetManDir()
}

func (a *Adapter) LayoutExportDir() (string, error) {
	return config.GetLayoutExportDir()
}

var _ port.XDGPaths = (*Adapter)(nil)
