package entity

import (
	"encoding/json"
	"fmt"
	"slices"
)

// GroupID uniquely identifies a group across grid, floating and popout sets.
type GroupID string

// GroupLocation tells which of the three location sets holds a group.
type GroupLocation string

const (
	LocationGrid     GroupLocation = "grid"
	LocationFloating GroupLocation = "floating"
	LocationPopout   GroupLocation = "popout"
)

// LockMode restricts what can be dropped onto a group.
type LockMode int

const (
	LockNone         LockMode = iota // drops accepted everywhere
	LockLocked                       // edge drops only, no reparenting into the group
	LockNoDropTarget                 // never a drop target
)

// MarshalJSON encodes false, true or "no-drop-target".
func (l LockMode) MarshalJSON() ([]byte, error) {
	switch l {
	case LockLocked:
		return []byte("true"), nil
	case LockNoDropTarget:
		return json.Marshal("no-drop-target")
	default:
		return []byte("false"), nil
	}
}

// UnmarshalJSON accepts a boolean or the string "no-drop-target".
func (l *LockMode) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*l = LockLocked
		} else {
			*l = LockNone
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil && s == "no-drop-target" {
		*l = LockNoDropTarget
		return nil
	}
	return fmt.Errorf("%w: locked must be a boolean or \"no-drop-target\", got %s", ErrInvalidLayout, string(data))
}

// OpenPanelOptions tunes Group.OpenPanel.
type OpenPanelOptions struct {
	Index              *int // nil appends
	SkipSetActive      bool
	SkipSetGroupActive bool
}

// GroupOptions configures a new group.
type GroupOptions struct {
	Constraints Constraints
	Locked      LockMode
	HideHeader  bool
	// Watermark is called whenever the group becomes empty; the returned
	// handle is disposed once a panel arrives.
	Watermark func() Disposable
}

// Group is one leaf's payload: an ordered tab list with an active panel
// and a most-recently-used stack.
//
// Invariants: active and every mru entry are members of panels; active is
// nil iff panels is empty; len(mru) == len(panels).
type Group struct {
	ID         GroupID
	Locked     LockMode
	HideHeader bool

	panels      []*Panel
	active      *Panel
	mru         []*Panel
	location    GroupLocation
	constraints Constraints

	newWatermark func() Disposable
	watermark    Disposable

	onDidAddPanel          Emitter[*Panel]
	onDidRemovePanel       Emitter[*Panel]
	onDidActivePanelChange Emitter[*Panel]
	onRequestActivate      Emitter[*Group]
	onRequestClosePanel    Emitter[*Panel]
	onRequestRemove        Emitter[*Group]
}

// NewGroup creates an empty grid group; the watermark is shown immediately.
func NewGroup(id GroupID, opts GroupOptions) *Group {
	g := &Group{
		ID:           id,
		Locked:       opts.Locked,
		HideHeader:   opts.HideHeader,
		location:     LocationGrid,
		constraints:  opts.Constraints,
		newWatermark: opts.Watermark,
	}
	g.showWatermark()
	return g
}

// OnDidAddPanel fires once for every genuinely new member.
func (g *Group) OnDidAddPanel(fn func(*Panel)) Disposable {
	return g.onDidAddPanel.Subscribe(fn)
}

// OnDidRemovePanel fires after a panel is detached.
func (g *Group) OnDidRemovePanel(fn func(*Panel)) Disposable {
	return g.onDidRemovePanel.Subscribe(fn)
}

// OnDidActivePanelChange fires when the active panel changes; nil means the
// group became empty.
func (g *Group) OnDidActivePanelChange(fn func(*Panel)) Disposable {
	return g.onDidActivePanelChange.Subscribe(fn)
}

// OnRequestActivate asks the owner to make this group the active one.
func (g *Group) OnRequestActivate(fn func(*Group)) Disposable {
	return g.onRequestActivate.Subscribe(fn)
}

// OnRequestClosePanel asks the owner to tear a panel down.
func (g *Group) OnRequestClosePanel(fn func(*Panel)) Disposable {
	return g.onRequestClosePanel.Subscribe(fn)
}

// OnRequestRemove asks the owner to delete this (empty) group.
func (g *Group) OnRequestRemove(fn func(*Group)) Disposable {
	return g.onRequestRemove.Subscribe(fn)
}

// Location returns which location set holds the group.
func (g *Group) Location() GroupLocation {
	return g.location
}

// SetLocation moves the group between location sets. Only the owner calls it.
func (g *Group) SetLocation(loc GroupLocation) {
	g.location = loc
}

// SetConstraints replaces the group's configured constraints.
func (g *Group) SetConstraints(c Constraints) {
	g.constraints = c
}

// Constraints returns the effective constraints: every bound the active
// panel specifies wins over the group's own.
func (g *Group) Constraints() Constraints {
	c := g.constraints
	if g.active != nil {
		c = c.Overlay(g.active.Constraints)
	}
	return c
}

// Size returns the number of panels.
func (g *Group) Size() int {
	return len(g.panels)
}

// IsEmpty reports whether the group has no panels.
func (g *Group) IsEmpty() bool {
	return len(g.panels) == 0
}

// HasWatermark reports whether the empty-state watermark is shown.
func (g *Group) HasWatermark() bool {
	return g.watermark != nil
}

// Panels returns the panels in tab order.
func (g *Group) Panels() []*Panel {
	return slices.Clone(g.panels)
}

// ActivePanel returns the active panel or nil.
func (g *Group) ActivePanel() *Panel {
	return g.active
}

// MRU returns panel ids from most to least recently activated.
func (g *Group) MRU() []PanelID {
	ids := make([]PanelID, len(g.mru))
	for i, p := range g.mru {
		ids[i] = p.ID
	}
	return ids
}

// IndexOf returns the tab index of a panel or -1.
func (g *Group) IndexOf(id PanelID) int {
	return slices.IndexFunc(g.panels, func(p *Panel) bool { return p.ID == id })
}

// Contains reports whether the panel is a member.
func (g *Group) Contains(id PanelID) bool {
	return g.IndexOf(id) >= 0
}

// Panel returns a member by id or nil.
func (g *Group) Panel(id PanelID) *Panel {
	if i := g.IndexOf(id); i >= 0 {
		return g.panels[i]
	}
	return nil
}

// OpenPanel reparents panel into the group at opts.Index (append when nil).
// A panel that is already a member is only reordered.
func (g *Group) OpenPanel(panel *Panel, opts OpenPanelOptions) error {
	if panel == nil {
		return fmt.Errorf("panel is required")
	}
	if panel.group != "" && panel.group != g.ID {
		return fmt.Errorf("panel %s still belongs to group %s", panel.ID, panel.group)
	}

	if existing := g.IndexOf(panel.ID); existing >= 0 {
		if opts.Index != nil {
			to := *opts.Index
			if to < 0 || to >= len(g.panels) {
				return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidLocation, to, len(g.panels))
			}
			g.panels = slices.Delete(g.panels, existing, existing+1)
			g.panels = slices.Insert(g.panels, to, panel)
		}
	} else {
		index := len(g.panels)
		if opts.Index != nil {
			index = *opts.Index
			if index < 0 || index > len(g.panels) {
				return fmt.Errorf("%w: index %d out of range [0,%d]", ErrInvalidLocation, index, len(g.panels))
			}
		}
		g.panels = slices.Insert(g.panels, index, panel)
		g.mru = append(g.mru, panel)
		panel.group = g.ID
		g.hideWatermark()
		g.onDidAddPanel.Fire(panel)
	}

	if !opts.SkipSetActive || g.active == nil {
		g.setActive(panel)
	}
	if !opts.SkipSetGroupActive {
		g.onRequestActivate.Fire(g)
	}
	return nil
}

// RemovePanel detaches a member. When it was active the head of the MRU
// stack becomes active.
func (g *Group) RemovePanel(id PanelID) (*Panel, error) {
	index := g.IndexOf(id)
	if index < 0 {
		return nil, fmt.Errorf("%w: panel %s is not in group %s", ErrMissingReference, id, g.ID)
	}
	panel := g.panels[index]
	g.panels = slices.Delete(g.panels, index, index+1)
	g.mru = slices.DeleteFunc(g.mru, func(p *Panel) bool { return p == panel })
	panel.group = ""

	g.onDidRemovePanel.Fire(panel)

	if g.active == panel {
		if len(g.mru) > 0 {
			g.setActive(g.mru[0])
		} else {
			g.active = nil
			g.onDidActivePanelChange.Fire(nil)
		}
	}
	if len(g.panels) == 0 {
		g.showWatermark()
	}
	return panel, nil
}

// SetActivePanel activates a member.
func (g *Group) SetActivePanel(id PanelID) error {
	panel := g.Panel(id)
	if panel == nil {
		return fmt.Errorf("%w: panel %s is not in group %s", ErrMissingReference, id, g.ID)
	}
	g.setActive(panel)
	return nil
}

// MoveToNext activates the panel after the active one, wrapping to the
// first unless suppressRoll is set.
func (g *Group) MoveToNext(suppressRoll bool) {
	g.moveBy(1, suppressRoll)
}

// MoveToPrevious activates the panel before the active one, wrapping to the
// last unless suppressRoll is set.
func (g *Group) MoveToPrevious(suppressRoll bool) {
	g.moveBy(-1, suppressRoll)
}

func (g *Group) moveBy(step int, suppressRoll bool) {
	if g.active == nil {
		return
	}
	next := g.IndexOf(g.active.ID) + step
	if next < 0 || next >= len(g.panels) {
		if suppressRoll {
			return
		}
		next = (next + len(g.panels)) % len(g.panels)
	}
	g.setActive(g.panels[next])
}

// CloseAllPanels asks the owner to close every panel in tab order. An
// already empty group asks to be removed instead.
func (g *Group) CloseAllPanels() {
	if len(g.panels) == 0 {
		g.onRequestRemove.Fire(g)
		return
	}
	for _, panel := range slices.Clone(g.panels) {
		g.onRequestClosePanel.Fire(panel)
	}
}

// ToState captures the serializable group state.
func (g *Group) ToState() GroupState {
	views := make([]PanelID, len(g.panels))
	for i, p := range g.panels {
		views[i] = p.ID
	}
	state := GroupState{
		ID:         g.ID,
		Views:      views,
		Locked:     g.Locked,
		HideHeader: g.HideHeader,
	}
	if g.active != nil {
		state.ActiveView = g.active.ID
	}
	return state
}

// Dispose drops the watermark and every subscription. Panels are not
// touched; the owner disposes them.
func (g *Group) Dispose() {
	g.hideWatermark()
	g.onDidAddPanel.Clear()
	g.onDidRemovePanel.Clear()
	g.onDidActivePanelChange.Clear()
	g.onRequestActivate.Clear()
	g.onRequestClosePanel.Clear()
	g.onRequestRemove.Clear()
}

func (g *Group) setActive(panel *Panel) {
	if i := slices.Index(g.mru, panel); i > 0 {
		g.mru = slices.Delete(g.mru, i, i+1)
		g.mru = slices.Insert(g.mru, 0, panel)
	}
	if g.active == panel {
		return
	}
	g.active = panel
	g.onDidActivePanelChange.Fire(panel)
}

func (g *Group) showWatermark() {
	if g.watermark != nil || g.newWatermark == nil {
		return
	}
	g.watermark = g.newWatermark()
}

func (g *Group) hideWatermark() {
	if g.watermark == nil {
		return
	}
	g.watermark.Dispose()
	g.watermark = nil
}
