package coordinator

import (
	"context"
	"fmt"
	"slices"
	"strconv"

	"github.com/bnema/dockgrid/internal/application/port"
	"github.com/bnema/dockgrid/internal/domain/entity"
	"github.com/bnema/dockgrid/internal/infrastructure/config"
	"github.com/bnema/dockgrid/internal/logging"
	"github.com/bnema/dockgrid/internal/ui/layout"
)

// DockingOptions tunes a DockingController.
type DockingOptions struct {
	Orientation      entity.Orientation
	Width, Height    int
	RemoveEmptyGroup bool
	GroupConstraints entity.Constraints
	FloatingBox      entity.Box
	// DropThresholdPercent is the depth of a drop target's edge zones.
	DropThresholdPercent int
	// DefaultComponent replaces content components that are not
	// registered. Empty makes them fail with entity.ErrUnknownComponent.
	DefaultComponent string
	// IsRegistered filters component names before the factory sees them.
	// Nil accepts every name.
	IsRegistered func(name string) bool
}

// DefaultDockingOptions returns the options used when no config is loaded.
func DefaultDockingOptions() DockingOptions {
	return DockingOptions{
		Orientation:          entity.OrientationHorizontal,
		RemoveEmptyGroup:     true,
		FloatingBox:          entity.Box{Left: 100, Top: 100, Width: 300, Height: 300},
		DropThresholdPercent: 20,
	}
}

// DockingOptionsFromConfig maps the [layout] and [components] sections.
func DockingOptionsFromConfig(cfg *config.Config) DockingOptions {
	return DockingOptions{
		Orientation:          cfg.RootOrientation(),
		Width:                cfg.Layout.Width,
		Height:               cfg.Layout.Height,
		RemoveEmptyGroup:     cfg.Layout.RemoveEmptyGroup,
		GroupConstraints:     cfg.GroupConstraints(),
		FloatingBox:          cfg.FloatingBox(),
		DropThresholdPercent: cfg.Layout.DropThresholdPercent,
		DefaultComponent:     cfg.Components.Default,
		IsRegistered:         cfg.IsRegistered,
	}
}

// DockingControllerConfig holds the collaborators of a DockingController.
type DockingControllerConfig struct {
	Components port.ComponentFactory
	Watermarks port.WatermarkFactory // optional
	Windows    port.WindowHost       // optional, required for popout groups
	Options    DockingOptions
}

// groupView is a group as the controller holds it: a grid leaf payload plus
// the state of its floating box or popout window.
type groupView struct {
	group *entity.Group
	subs  entity.CompositeDisposable

	box       entity.Box
	window    port.Window
	windowBox *entity.Box
	windowSub entity.Disposable
}

func (v *groupView) LeafID() string { return string(v.group.ID) }

func (v *groupView) Constraints() entity.Constraints { return v.group.Constraints() }

// PanelMoveEvent reports a panel that changed group.
type PanelMoveEvent struct {
	Panel *entity.Panel
	From  entity.GroupID
	To    entity.GroupID
}

// GroupLocationEvent reports a group moving between grid, floating and popout.
type GroupLocationEvent struct {
	Group *entity.Group
	From  entity.GroupLocation
	To    entity.GroupLocation
}

// DockingController owns the grid of groups and every floating and popout
// group. All mutation goes through it; it is not safe for concurrent use.
type DockingController struct {
	ctx        context.Context
	components port.ComponentFactory
	watermarks port.WatermarkFactory
	windows    port.WindowHost
	opts       DockingOptions

	tree     *layout.Tree
	groups   map[entity.GroupID]*groupView
	floating []*groupView
	popouts  []*groupView
	panels   map[entity.PanelID]*entity.Panel

	active         *groupView
	announcedPanel *entity.Panel
	nextGroupID    int
	drag           *DragSession

	// depth counts nested operations; events that describe the whole
	// operation fire when it drops back to zero.
	depth   int
	dirty   bool
	moving  int
	loading bool

	onDidAddGroup            entity.Emitter[*entity.Group]
	onDidRemoveGroup         entity.Emitter[*entity.Group]
	onDidAddPanel            entity.Emitter[*entity.Panel]
	onDidRemovePanel         entity.Emitter[*entity.Panel]
	onDidMovePanel           entity.Emitter[PanelMoveEvent]
	onDidActiveGroupChange   entity.Emitter[*entity.Group]
	onDidActivePanelChange   entity.Emitter[*entity.Panel]
	onDidLayoutChange        entity.Emitter[struct{}]
	onDidLayoutFromJSON      entity.Emitter[struct{}]
	onWillDrop               entity.Emitter[*WillDropEvent]
	onDidDrop                entity.Emitter[DropEvent]
	onDidGroupLocationChange entity.Emitter[GroupLocationEvent]
}

// NewDockingController creates an empty controller.
func NewDockingController(ctx context.Context, cfg DockingControllerConfig) *DockingController {
	log := logging.FromContext(ctx)
	log.Debug().
		Str("orientation", cfg.Options.Orientation.String()).
		Int("width", cfg.Options.Width).
		Int("height", cfg.Options.Height).
		Msg("creating docking controller")

	c := &DockingController{
		ctx:        logging.WithComponent(ctx, "docking"),
		components: cfg.Components,
		watermarks: cfg.Watermarks,
		windows:    cfg.Windows,
		opts:       cfg.Options,
		groups:     make(map[entity.GroupID]*groupView),
		panels:     make(map[entity.PanelID]*entity.Panel),
	}
	c.tree = layout.NewTree(c.ctx, cfg.Options.Orientation)
	c.tree.Layout(cfg.Options.Width, cfg.Options.Height)
	return c
}

// OnDidAddGroup fires when a group is created.
func (c *DockingController) OnDidAddGroup(fn func(*entity.Group)) entity.Disposable {
	return c.onDidAddGroup.Subscribe(fn)
}

// OnDidRemoveGroup fires after a group is removed and disposed.
func (c *DockingController) OnDidRemoveGroup(fn func(*entity.Group)) entity.Disposable {
	return c.onDidRemoveGroup.Subscribe(fn)
}

// OnDidAddPanel fires when a panel is created.
func (c *DockingController) OnDidAddPanel(fn func(*entity.Panel)) entity.Disposable {
	return c.onDidAddPanel.Subscribe(fn)
}

// OnDidRemovePanel fires after a panel is detached and its renderers released.
func (c *DockingController) OnDidRemovePanel(fn func(*entity.Panel)) entity.Disposable {
	return c.onDidRemovePanel.Subscribe(fn)
}

// OnDidMovePanel fires when a panel changes group.
func (c *DockingController) OnDidMovePanel(fn func(PanelMoveEvent)) entity.Disposable {
	return c.onDidMovePanel.Subscribe(fn)
}

// OnDidActiveGroupChange fires when the active group changes; nil means none.
func (c *DockingController) OnDidActiveGroupChange(fn func(*entity.Group)) entity.Disposable {
	return c.onDidActiveGroupChange.Subscribe(fn)
}

// OnDidActivePanelChange fires when the active panel of the active group
// changes, once per operation.
func (c *DockingController) OnDidActivePanelChange(fn func(*entity.Panel)) entity.Disposable {
	return c.onDidActivePanelChange.Subscribe(fn)
}

// OnDidLayoutChange fires once per operation that changed the layout.
func (c *DockingController) OnDidLayoutChange(fn func(struct{})) entity.Disposable {
	return c.onDidLayoutChange.Subscribe(fn)
}

// OnDidLayoutFromJSON fires after FromJSON replaced the layout.
func (c *DockingController) OnDidLayoutFromJSON(fn func(struct{})) entity.Disposable {
	return c.onDidLayoutFromJSON.Subscribe(fn)
}

// OnWillDrop fires before a resolved drop is applied; listeners may veto it.
func (c *DockingController) OnWillDrop(fn func(*WillDropEvent)) entity.Disposable {
	return c.onWillDrop.Subscribe(fn)
}

// OnDidDrop fires after a drop was applied.
func (c *DockingController) OnDidDrop(fn func(DropEvent)) entity.Disposable {
	return c.onDidDrop.Subscribe(fn)
}

// OnDidGroupLocationChange fires when a group moves between grid,
// floating and popout.
func (c *DockingController) OnDidGroupLocationChange(fn func(GroupLocationEvent)) entity.Disposable {
	return c.onDidGroupLocationChange.Subscribe(fn)
}

func (c *DockingController) begin() {
	c.depth++
}

func (c *DockingController) end() {
	c.depth--
	if c.depth == 0 {
		c.settle()
	}
}

// settle publishes what the finished operation changed: the reconciled
// active panel first, then one layout change.
func (c *DockingController) settle() {
	if c.loading {
		return
	}
	if panel := c.ActivePanel(); panel != c.announcedPanel {
		c.announcedPanel = panel
		c.onDidActivePanelChange.Fire(panel)
	}
	if c.dirty {
		c.dirty = false
		c.onDidLayoutChange.Fire(struct{}{})
	}
}

func (c *DockingController) markChanged() {
	c.dirty = true
	if c.depth == 0 {
		c.settle()
	}
}

// Layout resizes the grid to the host extent.
func (c *DockingController) Layout(width, height int) {
	c.begin()
	defer c.end()

	c.tree.Layout(width, height)
	c.markChanged()
}

// Width returns the grid width.
func (c *DockingController) Width() int { return c.tree.Width() }

// Height returns the grid height.
func (c *DockingController) Height() int { return c.tree.Height() }

// Orientation returns the grid root orientation.
func (c *DockingController) Orientation() entity.Orientation { return c.tree.Orientation() }

// CheckInvariants verifies the grid and the group and panel bookkeeping.
func (c *DockingController) CheckInvariants() error {
	if err := c.tree.CheckInvariants(); err != nil {
		return err
	}
	seen := 0
	for id, view := range c.groups {
		if view.group.ID != id {
			return fmt.Errorf("%w: group %s indexed as %s", layout.ErrInvariantViolation, view.group.ID, id)
		}
		inGrid := c.tree.Has(string(id))
		inFloating := slices.Contains(c.floating, view)
		inPopout := slices.Contains(c.popouts, view)
		if count(inGrid, inFloating, inPopout) != 1 {
			return fmt.Errorf("%w: group %s is in %d location sets", layout.ErrInvariantViolation, id, count(inGrid, inFloating, inPopout))
		}
		for _, p := range view.group.Panels() {
			if c.panels[p.ID] != p || p.Group() != id {
				return fmt.Errorf("%w: panel %s is not owned by group %s", layout.ErrInvariantViolation, p.ID, id)
			}
			seen++
		}
	}
	if seen != len(c.panels) {
		return fmt.Errorf("%w: %d panels indexed, %d in groups", layout.ErrInvariantViolation, len(c.panels), seen)
	}
	if c.tree.LeafCount()+len(c.floating)+len(c.popouts) != len(c.groups) {
		return fmt.Errorf("%w: location sets do not match the group index", layout.ErrInvariantViolation)
	}
	return nil
}

func count(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

// Locate returns the grid location of a group.
func (c *DockingController) Locate(id entity.GroupID) (layout.Location, error) {
	return c.tree.Locate(string(id))
}

// GroupBox returns the rectangle a group occupies: its grid box, its
// floating box, or its window geometry.
func (c *DockingController) GroupBox(id entity.GroupID) (entity.Box, error) {
	view, err := c.view(id)
	if err != nil {
		return entity.Box{}, err
	}
	switch view.group.Location() {
	case entity.LocationFloating:
		return view.box, nil
	case entity.LocationPopout:
		if box := view.popoutBox(); box != nil {
			return *box, nil
		}
		return entity.Box{}, fmt.Errorf("%w: popout group %s has no known geometry", entity.ErrInvalidLocation, id)
	default:
		return c.tree.LeafBox(string(id))
	}
}

func (v *groupView) popoutBox() *entity.Box {
	if v.window != nil {
		if box := v.window.Geometry(); box != nil {
			return box
		}
	}
	return v.windowBox
}

// Panel returns a live panel or nil.
func (c *DockingController) Panel(id entity.PanelID) *entity.Panel {
	return c.panels[id]
}

// Group returns a live group or nil.
func (c *DockingController) Group(id entity.GroupID) *entity.Group {
	if view := c.groups[id]; view != nil {
		return view.group
	}
	return nil
}

// Groups returns grid groups depth-first, then floating, then popout groups.
func (c *DockingController) Groups() []*entity.Group {
	views := c.orderedViews()
	out := make([]*entity.Group, len(views))
	for i, v := range views {
		out[i] = v.group
	}
	return out
}

// Panels returns every panel, group by group in Groups order, in tab order.
func (c *DockingController) Panels() []*entity.Panel {
	out := make([]*entity.Panel, 0, len(c.panels))
	for _, v := range c.orderedViews() {
		out = append(out, v.group.Panels()...)
	}
	return out
}

// ActiveGroup returns the active group or nil.
func (c *DockingController) ActiveGroup() *entity.Group {
	if c.active == nil {
		return nil
	}
	return c.active.group
}

// ActivePanel returns the active panel of the active group, or nil.
func (c *DockingController) ActivePanel() *entity.Panel {
	if c.active == nil {
		return nil
	}
	return c.active.group.ActivePanel()
}

// FloatingBox returns the box of a floating group.
func (c *DockingController) FloatingBox(id entity.GroupID) (entity.Box, bool) {
	view := c.groups[id]
	if view == nil || view.group.Location() != entity.LocationFloating {
		return entity.Box{}, false
	}
	return view.box, true
}

func (c *DockingController) orderedViews() []*groupView {
	out := make([]*groupView, 0, len(c.groups))
	for _, leaf := range c.tree.Leaves() {
		out = append(out, leaf.(*groupView))
	}
	out = append(out, c.floating...)
	return append(out, c.popouts...)
}

func (c *DockingController) gridViews() []*groupView {
	leaves := c.tree.Leaves()
	out := make([]*groupView, len(leaves))
	for i, leaf := range leaves {
		out[i] = leaf.(*groupView)
	}
	return out
}

func (c *DockingController) view(id entity.GroupID) (*groupView, error) {
	view := c.groups[id]
	if view == nil {
		return nil, fmt.Errorf("%w: group %s", entity.ErrMissingReference, id)
	}
	return view, nil
}

func (c *DockingController) panelView(id entity.PanelID) (*entity.Panel, *groupView, error) {
	panel := c.panels[id]
	if panel == nil {
		return nil, nil, fmt.Errorf("%w: panel %s", entity.ErrMissingReference, id)
	}
	return panel, c.groups[panel.Group()], nil
}

// generateGroupID returns the next sequential id not in use.
func (c *DockingController) generateGroupID() entity.GroupID {
	for {
		c.nextGroupID++
		id := entity.GroupID(strconv.Itoa(c.nextGroupID))
		if _, taken := c.groups[id]; !taken {
			return id
		}
	}
}
