package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// NodeType tags a serialized grid node.
type NodeType string

const (
	NodeBranch NodeType = "branch"
	NodeLeaf   NodeType = "leaf"
)

// SerializedLayout is the lossless JSON form of a whole docking layout.
type SerializedLayout struct {
	Grid           GridState              `json:"grid"`
	Panels         map[PanelID]PanelState `json:"panels"`
	ActiveGroup    GroupID                `json:"activeGroup,omitempty"`
	FloatingGroups []FloatingGroupState   `json:"floatingGroups,omitempty"`
	PopoutGroups   []PopoutGroupState     `json:"popoutGroups,omitempty"`
}

// GridState captures the grid tree and the extent it was laid out in.
type GridState struct {
	Root        GridNodeState `json:"root"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Orientation Orientation   `json:"orientation"`
}

// GridNodeState is one serialized node: a branch with Children or a leaf
// with Group. Size is the node's extent along its parent's axis; for the
// root it is the orthogonal extent.
type GridNodeState struct {
	Type     NodeType
	Size     int
	Visible  *bool
	Children []GridNodeState
	Group    *GroupState
}

// PanelState is the serializable view state of a panel.
type PanelState struct {
	ID               PanelID        `json:"id"`
	ContentComponent string         `json:"contentComponent"`
	TabComponent     string         `json:"tabComponent,omitempty"`
	Title            string         `json:"title,omitempty"`
	Params           map[string]any `json:"params,omitempty"`
	Constraints
}

// GroupState is the serializable state of a group. Views are panel ids in
// tab order.
type GroupState struct {
	ID         GroupID   `json:"id"`
	Views      []PanelID `json:"views"`
	ActiveView PanelID   `json:"activeView,omitempty"`
	Locked     LockMode  `json:"locked,omitempty"`
	HideHeader bool      `json:"hideHeader,omitempty"`
}

// FloatingGroupState is a floating group and its overlay box.
type FloatingGroupState struct {
	Data     GroupState `json:"data"`
	Position Box        `json:"position"`
}

// PopoutGroupState is a popout group and its window geometry, if known.
type PopoutGroupState struct {
	Data     GroupState `json:"data"`
	Position *Box       `json:"position"`
}

type gridNodeJSON struct {
	Type    NodeType        `json:"type"`
	Data    json.RawMessage `json:"data"`
	Size    *float64        `json:"size,omitempty"`
	Visible *bool           `json:"visible,omitempty"`
}

// requireKeys fails with ErrInvalidLayout unless raw is an object that
// carries every key. A null value still counts as present.
func requireKeys(raw []byte, what string, keys ...string) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, what, err)
	}
	for _, key := range keys {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%w: %s is missing %q", ErrInvalidLayout, what, key)
		}
	}
	return nil
}

// UnmarshalJSON requires the grid and panels keys.
func (s *SerializedLayout) UnmarshalJSON(raw []byte) error {
	if err := requireKeys(raw, "layout", "grid", "panels"); err != nil {
		return err
	}
	type plain SerializedLayout
	var out plain
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*s = SerializedLayout(out)
	return nil
}

// UnmarshalJSON requires the root and orientation keys. A grid without an
// orientation would otherwise reload as HORIZONTAL.
func (g *GridState) UnmarshalJSON(raw []byte) error {
	if err := requireKeys(raw, "grid", "root", "orientation"); err != nil {
		return err
	}
	type plain GridState
	var out plain
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*g = GridState(out)
	return nil
}

// UnmarshalJSON requires the views key.
func (g *GroupState) UnmarshalJSON(raw []byte) error {
	if err := requireKeys(raw, "group", "views"); err != nil {
		return err
	}
	type plain GroupState
	var out plain
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*g = GroupState(out)
	return nil
}

// IsVisible reports the visibility flag, defaulting to true.
func (n GridNodeState) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// MarshalJSON writes {type, data, size, visible}.
func (n GridNodeState) MarshalJSON() ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch n.Type {
	case NodeBranch:
		children := n.Children
		if children == nil {
			children = []GridNodeState{}
		}
		data, err = json.Marshal(children)
	case NodeLeaf:
		if n.Group == nil {
			return nil, fmt.Errorf("%w: leaf without group", ErrInvalidLayout)
		}
		data, err = json.Marshal(n.Group)
	default:
		return nil, fmt.Errorf("%w: unknown node type %q", ErrInvalidLayout, n.Type)
	}
	if err != nil {
		return nil, err
	}
	size := float64(n.Size)
	return json.Marshal(gridNodeJSON{Type: n.Type, Data: data, Size: &size, Visible: n.Visible})
}

// UnmarshalJSON validates the node shape before accepting it.
func (n *GridNodeState) UnmarshalJSON(raw []byte) error {
	var node gridNodeJSON
	if err := json.Unmarshal(raw, &node); err != nil {
		return fmt.Errorf("%w: grid node: %v", ErrInvalidLayout, err)
	}
	out := GridNodeState{Type: node.Type, Visible: node.Visible}
	if node.Size != nil {
		if *node.Size < 0 || math.IsNaN(*node.Size) || math.IsInf(*node.Size, 0) {
			return fmt.Errorf("%w: node size %v", ErrInvalidLayout, *node.Size)
		}
		out.Size = int(math.Round(*node.Size))
	}
	if len(node.Data) == 0 || string(node.Data) == "null" {
		return fmt.Errorf("%w: %s node without data", ErrInvalidLayout, node.Type)
	}

	switch node.Type {
	case NodeBranch:
		if node.Data[0] != '[' {
			return fmt.Errorf("%w: branch data must be an array", ErrInvalidLayout)
		}
		var children []GridNodeState
		if err := json.Unmarshal(node.Data, &children); err != nil {
			if errors.Is(err, ErrInvalidLayout) {
				return err
			}
			return fmt.Errorf("%w: branch children: %v", ErrInvalidLayout, err)
		}
		out.Children = children
	case NodeLeaf:
		if node.Data[0] != '{' {
			return fmt.Errorf("%w: leaf data must be an object", ErrInvalidLayout)
		}
		var group GroupState
		if err := json.Unmarshal(node.Data, &group); err != nil {
			if errors.Is(err, ErrInvalidLayout) {
				return err
			}
			return fmt.Errorf("%w: leaf group: %v", ErrInvalidLayout, err)
		}
		out.Group = &group
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidLayout, node.Type)
	}

	*n = out
	return nil
}

// ParseLayout decodes and validates a serialized layout.
func ParseLayout(data []byte) (*SerializedLayout, error) {
	var layout SerializedLayout
	if err := json.Unmarshal(data, &layout); err != nil {
		if errors.Is(err, ErrInvalidLayout) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &layout, nil
}

// Validate checks structure and cross references without touching any live
// state. It also fills empty PanelState ids from their map keys.
func (s *SerializedLayout) Validate() error {
	if s.Grid.Root.Type != NodeBranch {
		return fmt.Errorf("%w: grid root must be a branch, got %q", ErrInvalidLayout, s.Grid.Root.Type)
	}
	if s.Grid.Width < 0 || s.Grid.Height < 0 {
		return fmt.Errorf("%w: negative grid extent %dx%d", ErrInvalidLayout, s.Grid.Width, s.Grid.Height)
	}

	for key, state := range s.Panels {
		if state.ID == "" {
			state.ID = key
			s.Panels[key] = state
		}
		if state.ID != key {
			return fmt.Errorf("%w: panel key %q does not match id %q", ErrInvalidLayout, key, state.ID)
		}
		if state.ContentComponent == "" {
			return fmt.Errorf("%w: panel %q has no contentComponent", ErrInvalidLayout, key)
		}
	}

	v := layoutValidator{
		layout:  s,
		groups:  make(map[GroupID]struct{}),
		panelAt: make(map[PanelID]GroupID),
	}
	if err := v.node(s.Grid.Root, true); err != nil {
		return err
	}
	for _, f := range s.FloatingGroups {
		if f.Position.Width < 0 || f.Position.Height < 0 {
			return fmt.Errorf("%w: floating group %q has a negative box", ErrInvalidLayout, f.Data.ID)
		}
		if err := v.group(f.Data); err != nil {
			return err
		}
	}
	for _, p := range s.PopoutGroups {
		if err := v.group(p.Data); err != nil {
			return err
		}
	}
	if s.ActiveGroup != "" {
		if _, ok := v.groups[s.ActiveGroup]; !ok {
			return fmt.Errorf("%w: active group %q", ErrMissingReference, s.ActiveGroup)
		}
	}
	return nil
}

// GroupCount returns the number of groups in every location set.
func (s *SerializedLayout) GroupCount() int {
	return countLeaves(s.Grid.Root) + len(s.FloatingGroups) + len(s.PopoutGroups)
}

// PanelCount returns the number of panels referenced by groups.
func (s *SerializedLayout) PanelCount() int {
	count := 0
	for _, g := range s.AllGroups() {
		count += len(g.Views)
	}
	return count
}

// AllGroups returns every group state: grid leaves depth-first, then
// floating, then popout groups.
func (s *SerializedLayout) AllGroups() []GroupState {
	var out []GroupState
	var walk func(GridNodeState)
	walk = func(n GridNodeState) {
		if n.Type == NodeLeaf && n.Group != nil {
			out = append(out, *n.Group)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(s.Grid.Root)
	for _, f := range s.FloatingGroups {
		out = append(out, f.Data)
	}
	for _, p := range s.PopoutGroups {
		out = append(out, p.Data)
	}
	return out
}

func countLeaves(n GridNodeState) int {
	if n.Type == NodeLeaf {
		return 1
	}
	count := 0
	for _, c := range n.Children {
		count += countLeaves(c)
	}
	return count
}

type layoutValidator struct {
	layout  *SerializedLayout
	groups  map[GroupID]struct{}
	panelAt map[PanelID]GroupID
}

func (v *layoutValidator) node(n GridNodeState, root bool) error {
	switch n.Type {
	case NodeBranch:
		if !root && len(n.Children) == 0 {
			return fmt.Errorf("%w: empty branch below the root", ErrInvalidLayout)
		}
		for _, c := range n.Children {
			if err := v.node(c, false); err != nil {
				return err
			}
		}
		return nil
	case NodeLeaf:
		if n.Group == nil {
			return fmt.Errorf("%w: leaf without group", ErrInvalidLayout)
		}
		return v.group(*n.Group)
	default:
		return fmt.Errorf("%w: unknown node type %q", ErrInvalidLayout, n.Type)
	}
}

func (v *layoutValidator) group(g GroupState) error {
	if g.ID != "" {
		if _, dup := v.groups[g.ID]; dup {
			return fmt.Errorf("%w: group %q appears twice", ErrDuplicateID, g.ID)
		}
		v.groups[g.ID] = struct{}{}
	}
	for _, id := range g.Views {
		if _, ok := v.layout.Panels[id]; !ok {
			return fmt.Errorf("%w: group %q references panel %q", ErrMissingReference, g.ID, id)
		}
		if other, dup := v.panelAt[id]; dup {
			return fmt.Errorf("%w: panel %q is in groups %q and %q", ErrDuplicateID, id, other, g.ID)
		}
		v.panelAt[id] = g.ID
	}
	if g.ActiveView != "" {
		found := false
		for _, id := range g.Views {
			if id == g.ActiveView {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: active view %q is not in group %q", ErrMissingReference, g.ActiveView, g.ID)
		}
	}
	return nil
}
