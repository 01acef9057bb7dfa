package port

import (
	"context"

	"github.com/bnema/dockgrid/internal/domain/entity"
)

//go:generate mockgen -source=component.go -destination=mocks/mock_component.go -package=mocks

// ComponentFactory creates renderers for panel content and tabs, keyed by
// component name. Unknown names fail with entity.ErrUnknownComponent.
type ComponentFactory interface {
	CreateContent(name string, panel entity.PanelState) (entity.Disposable, error)
	CreateTab(name string, panel entity.PanelState) (entity.Disposable, error)
}

// WatermarkFactory renders the placeholder shown by an empty group.
type WatermarkFactory interface {
	CreateWatermark(group entity.GroupID) entity.Disposable
}

// PopoutRequest describes a detached window for a popout group.
type PopoutRequest struct {
	Group entity.GroupID
	Title string
	// Box is the requested geometry; nil lets the host decide.
	Box *entity.Box
}

// WindowHost creates detached windows for popout groups.
type WindowHost interface {
	// Open returns once the window reports ready or ctx is done.
	Open(ctx context.Context, req PopoutRequest) (Window, error)
}

// Window is a detached surface hosting one popout group.
type Window interface {
	// Geometry returns the current window box, nil when unknown.
	Geometry() *entity.Box
	Close() error
	// OnDidClose fires when the user closes the window.
	OnDidClose(fn func()) entity.Disposable
}
