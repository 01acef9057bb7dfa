// Package headless implements the rendering ports without a display. It is
// used to restore a layout into a DockingController only to measure it.
package headless

import (
	"fmt"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/domain/entity"
)

// Components is a ComponentFactory whose renderers draw nothing. It keeps
// count of the renderers that are still alive.
type Components struct {
	created int
	live    int
}

var _ port.ComponentFactory = (*Components)(nil)

// NewComponents creates an empty factory.
func NewComponents() *Components {
	return &Components{}
}

func (c *Components) CreateContent(name string, panel entity.PanelState) (entity.Disposable, error) {
	return c.create(name, panel)
}

func (c *Components) CreateTab(name string, panel entity.PanelState) (entity.Disposable, error) {
	return c.create(name, panel)
}

func (c *Components) create(name string, panel entity.PanelState) (entity.Disposable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty component name for panel %s", entity.ErrUnknownComponent, panel.ID)
	}
	c.created++
	c.live++
	disposed := false
	return entity.DisposableFunc(func() {
		if disposed {
			return
		}
		disposed = true
		c.live--
	}), nil
}

// Created returns how many renderers were ever created.
func (c *Components) Created() int { return c.created }

// Live returns how many renderers have not been disposed.
func (c *Components) Live() int { return c.live }
