package entity

import (
	"maps"
	"time"
)

// PanelID uniquely identifies a live panel.
type PanelID string

// Constraints bound a panel or group. Zero means "not specified"; an
// unspecified maximum is unbounded.
type Constraints struct {
	MinimumWidth  int `json:"minimumWidth,omitempty"`
	MaximumWidth  int `json:"maximumWidth,omitempty"`
	MinimumHeight int `json:"minimumHeight,omitempty"`
	MaximumHeight int `json:"maximumHeight,omitempty"`
}

// Overlay returns c with every field that o specifies replaced by o's value.
func (c Constraints) Overlay(o Constraints) Constraints {
	if o.MinimumWidth != 0 {
		c.MinimumWidth = o.MinimumWidth
	}
	if o.MaximumWidth != 0 {
		c.MaximumWidth = o.MaximumWidth
	}
	if o.MinimumHeight != 0 {
		c.MinimumHeight = o.MinimumHeight
	}
	if o.MaximumHeight != 0 {
		c.MaximumHeight = o.MaximumHeight
	}
	return c
}

// Panel is a single dockable unit of content. The owning group is tracked
// by id and only ever changed by Group.OpenPanel/RemovePanel.
type Panel struct {
	ID               PanelID
	Title            string
	Params           map[string]any
	ContentComponent string
	TabComponent     string
	Constraints      Constraints
	CreatedAt        time.Time

	// Renderer instances created by the component factory.
	Content Disposable
	Tab     Disposable

	group GroupID
}

// NewPanel creates a panel that does not belong to any group yet.
func NewPanel(id PanelID, contentComponent string) *Panel {
	return &Panel{
		ID:               id,
		ContentComponent: contentComponent,
		CreatedAt:        time.Now(),
	}
}

// Group returns the id of the owning group, or "" when detached.
func (p *Panel) Group() GroupID {
	return p.group
}

// SetTitle updates the tab title.
func (p *Panel) SetTitle(title string) {
	p.Title = title
}

// UpdateParameters merges params into the panel parameters. A nil value
// removes the key.
func (p *Panel) UpdateParameters(params map[string]any) {
	if p.Params == nil {
		p.Params = make(map[string]any, len(params))
	}
	for k, v := range params {
		if v == nil {
			delete(p.Params, k)
			continue
		}
		p.Params[k] = v
	}
}

// Dispose releases the renderer instances. Safe to call twice.
func (p *Panel) Dispose() {
	if p.Content != nil {
		p.Content.Dispose()
		p.Content = nil
	}
	if p.Tab != nil {
		p.Tab.Dispose()
		p.Tab = nil
	}
}

// ToState captures the serializable view state.
func (p *Panel) ToState() PanelState {
	var params map[string]any
	if len(p.Params) > 0 {
		params = maps.Clone(p.Params)
	}
	return PanelState{
		ID:               p.ID,
		ContentComponent: p.ContentComponent,
		TabComponent:     p.TabComponent,
		Title:            p.Title,
		Params:           params,
		Constraints:      p.Constraints,
	}
}
